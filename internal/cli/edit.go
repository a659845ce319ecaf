package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow"
)

func newDropCmd(opts *rootOptions) *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "drop <template-id>",
		Short: "Place a node from a template at a canvas point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok := s.editor.Templates().Get(args[0])
			if !ok {
				return reject(cmd, fmt.Errorf("%w: %q", workflow.ErrTemplateNotFound, args[0]))
			}
			n, err := s.editor.Drop(cmd.Context(), t, workflow.Position{X: x, Y: y})
			if err != nil {
				return reject(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "drop x coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "drop y coordinate")
	return cmd
}

func newConnectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <source> <target>",
		Short: "Connect two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.editor.Connect(cmd.Context(), args[0], args[1])
			if err != nil {
				return reject(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <node-id> <x> <y>",
		Short: "Move a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, ok := s.editor.Graph().Node(args[0]); !ok {
				return reject(cmd, fmt.Errorf("%w: %q", workflow.ErrNodeNotFound, args[0]))
			}
			return s.editor.MoveNode(cmd.Context(), args[0], workflow.Position{X: x, Y: y})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "delete <node|edge> <id>",
		Short:     "Delete a node (with its connections) or a connection",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(workflow.SelectNode), string(workflow.SelectEdge)},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.editor.Select(workflow.SelectionKind(args[0]), args[1]); err != nil {
				return reject(cmd, err)
			}
			deleted, err := s.editor.DeleteSelected(cmd.Context())
			if err != nil {
				return reject(cmd, err)
			}
			if deleted.Kind == workflow.SelectNode {
				report(cmd, workflow.NoticeNodeDeleted)
			} else {
				report(cmd, workflow.NoticeEdgeDeleted)
			}
			return nil
		},
	}
}
