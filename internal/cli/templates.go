package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow"
)

func newTemplatesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage the node templates available for dropping",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, t := range s.editor.Templates() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.ID, t.Label)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <label>",
		Short: "Add a template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.editor.AddTemplate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return reject(cmd, err)
			}
			report(cmd, workflow.NoticeTemplateAdded)
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.editor.RemoveTemplate(cmd.Context(), args[0]); err != nil {
				return reject(cmd, err)
			}
			report(cmd, workflow.NoticeTemplateRemoved)
			return nil
		},
	})

	return cmd
}
