package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/format"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the workflow (json, yaml, dot or svg)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.Parse(name)
			if err != nil {
				return err
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := format.Encode(cmd.Context(), s.editor.Graph(), f)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = f.FileName()
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			s.logger.Debug("exported", "path", output, "format", f, "bytes", len(data))
			report(cmd, workflow.NoticeExported)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default workflow.<format>)")
	cmd.Flags().StringVarP(&name, "format", "f", "json", "export format: json, yaml, dot, svg")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the workflow with the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.editor.ImportFrom(cmd.Context(), f); err != nil {
				return reject(cmd, err)
			}
			report(cmd, workflow.NoticeImported)
			return nil
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the workflow and all templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.editor.Reset(cmd.Context()); err != nil {
				return err
			}
			report(cmd, workflow.NoticeReset)
			return nil
		},
	}
}
