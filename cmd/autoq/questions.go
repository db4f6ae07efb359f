package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rushikeshburle/autoq/internal/model"
)

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the question bank",
	}
	cmd.AddCommand(
		questionsGenerateCmd(),
		questionsListCmd(),
		questionsGetCmd(),
		questionsCreateCmd(),
		questionsUpdateCmd(),
		questionsDeleteCmd(),
	)
	return cmd
}

func questionsGenerateCmd() *cobra.Command {
	defaults := model.DefaultGenerateConfig()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions from a processed document",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.Int64P("document", "d", 0, "Source document ID (required)")
	f.IntP("num", "n", defaults.NumQuestions, "Number of questions")
	f.StringSliceP("types", "t", []string{string(model.TypeMCQ), string(model.TypeShortAnswer)},
		"Question types (mcq, true_false, short_answer, long_answer, fill_blank, programming)")
	f.Float64("easy", defaults.DifficultyEasy, "Easy difficulty weight")
	f.Float64("medium", defaults.DifficultyMedium, "Medium difficulty weight")
	f.Float64("hard", defaults.DifficultyHard, "Hard difficulty weight")
	clientFlags(f)
	_ = cmd.MarkFlagRequired("document")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	v, sess, client, err := setup(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := model.GenerateConfig{
		DocumentID:       v.GetInt64("document"),
		NumQuestions:     v.GetInt("num"),
		DifficultyEasy:   v.GetFloat64("easy"),
		DifficultyMedium: v.GetFloat64("medium"),
		DifficultyHard:   v.GetFloat64("hard"),
	}
	for _, t := range v.GetStringSlice("types") {
		cfg.QuestionTypes = append(cfg.QuestionTypes, model.QuestionType(t))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	questions, err := client.GenerateQuestions(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return printJSON(questions)
}

func questionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions in the bank",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			filter := model.QuestionFilter{
				Type:       model.QuestionType(v.GetString("type")),
				Difficulty: model.Difficulty(v.GetString("difficulty")),
				DocumentID: v.GetInt64("document"),
			}
			questions, err := client.ListQuestions(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(questions)
		},
	}
	f := cmd.Flags()
	f.String("type", "", "Filter by question type")
	f.String("difficulty", "", "Filter by difficulty (easy, medium, hard)")
	f.Int64P("document", "d", 0, "Filter by source document ID")
	clientFlags(f)
	return cmd
}

func questionsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one question",
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
			q, err := client.GetQuestion(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(q)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

// readDraft decodes a question draft from a file, or stdin when path is "-".
func readDraft(path string) (model.QuestionDraft, error) {
	var draft model.QuestionDraft
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
		return draft, fmt.Errorf("parse question draft: %w", err)
	}
	return draft, nil
}

func questionsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a question from a JSON draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			draft, err := readDraft(v.GetString("file"))
			if err != nil {
				return err
			}
			q, err := client.CreateQuestion(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(q)
		},
	}
	f := cmd.Flags()
	f.StringP("file", "f", "-", "Draft JSON file (- for stdin)")
	clientFlags(f)
	return cmd
}

func questionsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a question with a JSON draft",
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
			draft, err := readDraft(v.GetString("file"))
			if err != nil {
				return err
			}
			q, err := client.UpdateQuestion(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			return printJSON(q)
		},
	}
	f := cmd.Flags()
	f.StringP("file", "f", "-", "Draft JSON file (- for stdin)")
	clientFlags(f)
	return cmd
}

func questionsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question",
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
			return client.DeleteQuestion(cmd.Context(), id)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}
