package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Manage uploaded documents",
	}
	cmd.AddCommand(
		documentsUploadCmd(),
		documentsListCmd(),
		documentsGetCmd(),
		documentsProcessCmd(),
		documentsDeleteCmd(),
		documentsTopicsCmd(),
	)
	return cmd
}

func idArg(args []string) (int64, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q", args[0])
	}
	return id, nil
}

func documentsUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a source document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			doc, err := client.UploadDocument(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func documentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			docs, err := client.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(docs)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func documentsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one document with its extracted text",
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
			doc, err := client.GetDocument(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(doc)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func documentsProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <id>",
		Short: "Start text extraction for a document",
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
			if err := client.ProcessDocument(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("processing started")
			return nil
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func documentsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
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
			return client.DeleteDocument(cmd.Context(), id)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}

func documentsTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics <id>",
		Short: "List topics extracted from a document",
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
			topics, err := client.DocumentTopics(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(topics)
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}
