package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushikeshburle/autoq/internal/screen"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show document, question, and paper counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sess, client, err := setup(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			d := screen.NewDashboard(client)
			if err := d.Refresh(cmd.Context()); err != nil {
				return err
			}
			stats := d.Stats()
			fmt.Printf("documents: %d\nquestions: %d\npapers:    %d\n",
				stats.Documents, stats.Questions, stats.Papers)
			return nil
		},
	}
	clientFlags(cmd.Flags())
	return cmd
}
