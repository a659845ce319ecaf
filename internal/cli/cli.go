// Package cli implements the workflow command-line interface.
//
// Every command loads the configuration (see package config), opens the
// configured store for the workspace and operates on the persisted workflow
// through a workflow.Editor, so changes made here are what the HTTP server
// and the canvas see next.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/config"
	"github.com/meikuraledutech/workflow/internal/backend"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) {
	version = v
}

type rootOptions struct {
	configPath string
	verbose    bool
}

// Execute runs the workflow CLI.
func Execute() error {
	return newRootCmd(os.Stderr).ExecuteContext(context.Background())
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "workflow",
		Short:        "Build and persist directed workflow diagrams",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newTemplatesCmd(opts))
	root.AddCommand(newDropCmd(opts))
	root.AddCommand(newConnectCmd(opts))
	root.AddCommand(newMoveCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newResetCmd(opts))

	return root
}

// session is an opened editor plus the store it must release.
type session struct {
	cfg    config.Config
	editor *workflow.Editor
	store  workflow.Store
	logger *charmlog.Logger
}

func (s *session) Close() error {
	return s.store.Close()
}

func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if !opts.verbose {
		if lvl, err := charmlog.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	editor, err := workflow.Open(ctx, store, workflow.Options{Logger: logger})
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{cfg: cfg, editor: editor, store: store, logger: logger}, nil
}

// report prints the notice for a completed operation.
func report(cmd *cobra.Command, n workflow.Notice) {
	fmt.Fprintln(cmd.OutOrStdout(), noticeStyle(n.Level).Render(n.Message))
}

// reject turns an operation error into the command's error, showing the
// user-facing notice first.
func reject(cmd *cobra.Command, err error) error {
	report(cmd, workflow.NoticeFor(err))
	return err
}
