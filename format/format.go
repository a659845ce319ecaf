// Package format encodes a workflow graph for download in formats other
// than the canonical JSON: YAML for hand editing, Graphviz DOT for tooling
// and SVG for a static picture of the diagram.
package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-yaml"

	"github.com/meikuraledutech/workflow"
)

// Format names an export encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	DOT  Format = "dot"
	SVG  Format = "svg"
)

// Formats lists every supported export encoding.
var Formats = []Format{JSON, YAML, DOT, SVG}

// Parse converts a user-supplied name to a Format. An empty name is JSON.
func Parse(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return JSON, nil
	case JSON, YAML, DOT, SVG:
		return f, nil
	case "yml":
		return YAML, nil
	case "gv":
		return DOT, nil
	default:
		return "", fmt.Errorf("format: unknown format %q", name)
	}
}

// FileName is the download name for f, e.g. "workflow.json".
func (f Format) FileName() string {
	if f == JSON {
		return workflow.ExportFileName
	}
	return "workflow." + string(f)
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml"
	case DOT:
		return "text/vnd.graphviz"
	case SVG:
		return "image/svg+xml"
	default:
		return "application/json"
	}
}

// Encode renders g in format f.
func Encode(ctx context.Context, g workflow.Graph, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return workflow.Export(g)
	case YAML:
		return ToYAML(g)
	case DOT:
		return []byte(ToDOT(g)), nil
	case SVG:
		return RenderSVG(ctx, ToDOT(g))
	default:
		return nil, fmt.Errorf("format: unknown format %q", f)
	}
}

// ToYAML encodes g as YAML with the same field names as the JSON export.
func ToYAML(g workflow.Graph) ([]byte, error) {
	return yaml.Marshal(g.Clone())
}

// ToDOT converts g to a left-to-right Graphviz digraph. Node positions are
// dropped; Graphviz lays the diagram out itself.
func ToDOT(g workflow.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph workflow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", quote(n.ID), quote(n.Data.Label))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [id=%s];\n", quote(e.Source), quote(e.Target), quote(e.ID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote returns s as a DOT double-quoted string. Only backslash, quote and
// newline are escaped; other characters pass through as UTF-8.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
