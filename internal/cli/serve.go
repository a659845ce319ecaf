package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workflow editor API for the canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if listen == "" {
				listen = s.cfg.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app := server.New(s.editor, s.logger)
			go func() {
				<-ctx.Done()
				s.logger.Info("shutting down")
				_ = app.Shutdown()
			}()

			s.logger.Info("listening", "addr", listen, "workspace", s.cfg.Workspace, "backend", s.cfg.Store.Backend)
			return app.Listen(listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (overrides config)")
	return cmd
}
