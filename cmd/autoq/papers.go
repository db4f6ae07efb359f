package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rushikeshburle/autoq/internal/download"
	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/model"
	"github.com/rushikeshburle/autoq/internal/screen"
)

func papersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "papers",
		Short: "Manage question papers",
	}
	cmd.AddCommand(
		papersCreateCmd(),
		papersListCmd(),
		papersGetCmd(),
		papersUpdateCmd(),
		papersDeleteCmd(),
		papersPublishCmd(),
		papersExportCmd(),
	)
	return cmd
}

func papersCreateCmd() *cobra.Command {
	defaults := model.DefaultPaperDraft()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Assemble a paper from selected questions",
		RunE:  runCreatePaper,
	}
	f := cmd.Flags()
	f.String("title", "", "Paper title (required)")
	f.String("description", "", "Paper description")
	f.Float64("marks", defaults.TotalMarks, "Total marks")
	f.Int("duration", defaults.DurationMinutes, "Duration in minutes")
	f.String("instructions", defaults.Instructions, "Instructions printed on the paper")
	f.String("institution", defaults.InstitutionName, "Institution name")
	f.Int64SliceP("questions", "q", nil, "Question IDs in paper order (required)")
	clientFlags(f)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("questions")
	return cmd
}

func runCreatePaper(cmd *cobra.Command, _ []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	questionIDs, err := cmd.Flags().GetInt64Slice("questions")
	if err != nil {
		return err
	}
	draft := model.PaperDraft{
		Title:           v.GetString("title"),
		Description:     v.GetString("description"),
		TotalMarks:      v.GetFloat64("marks"),
		DurationMinutes: v.GetInt("duration"),
		Instructions:    v.GetString("instructions"),
		InstitutionName: v.GetString("institution"),
		QuestionIDs:     questionIDs,
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	paper, err := client.CreatePaper(cmd.Context(), draft)
	if err != nil {
		return err
	}
	return printJSON(paper)
}

func papersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List papers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			papers, err := client.ListPapers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(papers)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func papersGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one paper with its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := idArg(args)
			if err != nil {
				return err
			}
			paper, err := client.GetPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(paper)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func papersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a paper with a JSON draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := idArg(args)
			if err != nil {
				return err
			}
			draft, err := readPaperDraft(v.GetString("file"))
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}
			paper, err := client.UpdatePaper(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			return printJSON(paper)
		},
	}
	f := cmd.Flags()
	f.StringP("file", "f", "-", "Draft JSON file (- for stdin)")
	clientFlags(f)
	return cmd
}

// readPaperDraft decodes a paper draft from a file, or stdin when path is "-".
func readPaperDraft(path string) (model.PaperDraft, error) {
	var draft model.PaperDraft
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return draft, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&draft); err != nil {
		return draft, fmt.Errorf("parse paper draft: %w", err)
	}
	return draft, nil
}

func papersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := idArg(args)
			if err != nil {
				return err
			}
			return client.DeletePaper(cmd.Context(), id)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func papersPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a paper to students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			id, err := idArg(args)
			if err != nil {
				return err
			}
			paper, err := client.PublishPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(paper)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func papersExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Render a paper to PDF or DOCX and save it locally",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportPaper,
	}
	f := cmd.Flags()
	f.String("format", string(model.ExportPDF), "Export format (pdf, docx)")
	f.Bool("answers", false, "Include the answer key")
	f.StringP("output-dir", "o", ".", "Directory to save the export in")
	clientFlags(f)
	return cmd
}

func runExportPaper(cmd *cobra.Command, args []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := idArg(args)
	if err != nil {
		return err
	}
	format := model.ExportFormat(v.GetString("format"))
	if !model.ValidExportFormat(format) {
		return fmt.Errorf("invalid export format %q", format)
	}
	includeAnswers := v.GetBool("answers")

	data, err := client.ExportPaper(cmd.Context(), id, format, includeAnswers)
	if err != nil {
		return err
	}

	path, err := download.Save(v.GetString("output-dir"), screen.ExportFilename(format, includeAnswers), data)
	if err != nil {
		return err
	}
	fmt.Println(appI18n.Td(cmd.Context(), "ExportSaved", map[string]any{"Path": path}))
	return nil
}
