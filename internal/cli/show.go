package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/workflow"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the templates, nodes and connections of the workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			printWorkflow(cmd.OutOrStdout(), s.editor.Graph(), s.editor.Templates())
			return nil
		},
	}
}

func printWorkflow(w io.Writer, g workflow.Graph, ts workflow.Templates) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Templates (%d)", len(ts))))
	for _, t := range ts {
		fmt.Fprintf(w, "  %s  %s\n", idStyle.Render(t.ID), t.Label)
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Nodes (%d)", len(g.Nodes))))
	for _, n := range g.Nodes {
		fmt.Fprintf(w, "  %s  %s %s\n",
			idStyle.Render(n.ID),
			labelStyle.Render(n.Data.Label),
			dimStyle.Render(fmt.Sprintf("(%g, %g)", n.Position.X, n.Position.Y)))
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Connections (%d)", len(g.Edges))))
	for _, e := range g.Edges {
		src, _ := g.Node(e.Source)
		dst, _ := g.Node(e.Target)
		fmt.Fprintf(w, "  %s  %s -> %s\n",
			idStyle.Render(e.ID), src.Data.Label, dst.Data.Label)
	}
}
