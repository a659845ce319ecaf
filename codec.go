package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ExportFileName is the name offered for downloaded exports.
const ExportFileName = "workflow.json"

// DefaultImportPosition is assigned to imported nodes that carry no position.
var DefaultImportPosition = Position{X: 100, Y: 100}

// Marshal encodes g as compact JSON for snapshot storage.
func Marshal(g Graph) ([]byte, error) {
	return json.Marshal(g.Clone())
}

// Unmarshal decodes a snapshot written by Marshal or Export.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("workflow: decode graph: %w", err)
	}
	return g.Clone(), nil
}

// Export encodes g as pretty-printed JSON.
func Export(g Graph) ([]byte, error) {
	return json.MarshalIndent(g.Clone(), "", "  ")
}

// MarshalTemplates encodes the registry for snapshot storage.
func MarshalTemplates(ts Templates) ([]byte, error) {
	if ts == nil {
		ts = Templates{}
	}
	return json.Marshal(ts)
}

// UnmarshalTemplates decodes a registry snapshot.
func UnmarshalTemplates(data []byte) (Templates, error) {
	var ts Templates
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("workflow: decode templates: %w", err)
	}
	if ts == nil {
		ts = Templates{}
	}
	return ts, nil
}

// importSchema is the shape an imported document must have before it is
// decoded into the typed model.
var importSchema = mustResolve(&jsonschema.Schema{
	Type:     "object",
	Required: []string{"nodes", "edges"},
	Properties: map[string]*jsonschema.Schema{
		"nodes": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"id"},
				Properties: map[string]*jsonschema.Schema{
					"id":   {Type: "string"},
					"type": {Type: "string"},
					"position": {
						Types:    []string{"object", "null"},
						Required: []string{"x", "y"},
						Properties: map[string]*jsonschema.Schema{
							"x": {Type: "number"},
							"y": {Type: "number"},
						},
					},
					"data": {
						Types: []string{"object", "null"},
						Properties: map[string]*jsonschema.Schema{
							"label": {Type: "string"},
						},
					},
				},
			},
		},
		"edges": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"source", "target"},
				Properties: map[string]*jsonschema.Schema{
					"id":     {Type: "string"},
					"source": {Type: "string"},
					"target": {Type: "string"},
				},
			},
		},
	},
})

func mustResolve(s *jsonschema.Schema) *jsonschema.Resolved {
	rs, err := s.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		panic(fmt.Sprintf("workflow: resolve import schema: %v", err))
	}
	return rs
}

type importNode struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Position *Position `json:"position"`
	Data     *NodeData `json:"data"`
}

type importDoc struct {
	Nodes []importNode `json:"nodes"`
	Edges []Edge       `json:"edges"`
}

// Import parses a user-supplied workflow document. Nodes without a position
// get DefaultImportPosition and edges without an id get EdgeID. The document
// must satisfy the graph invariants (unique node ids, no dangling or
// duplicate edges, no cycles). Every failure matches
// ErrInvalidWorkflowFormat; malformed JSON also matches ErrWorkflowParse.
// Alongside the graph, Import returns the registry entries derived from it.
func Import(data []byte) (Graph, Templates, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Graph{}, nil, fmt.Errorf("%w: %w: %v", ErrInvalidWorkflowFormat, ErrWorkflowParse, err)
	}
	if err := importSchema.Validate(raw); err != nil {
		return Graph{}, nil, fmt.Errorf("%w: %v", ErrInvalidWorkflowFormat, err)
	}

	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Graph{}, nil, fmt.Errorf("%w: %w: %v", ErrInvalidWorkflowFormat, ErrWorkflowParse, err)
	}

	g := Empty()
	for _, n := range doc.Nodes {
		node := Node{ID: n.ID, Type: n.Type, Position: DefaultImportPosition}
		if n.Position != nil {
			node.Position = *n.Position
		}
		if n.Data != nil {
			node.Data = *n.Data
		}
		var err error
		if g, err = g.AddNode(node); err != nil {
			return Graph{}, nil, fmt.Errorf("%w: %w", ErrInvalidWorkflowFormat, err)
		}
	}
	for _, e := range doc.Edges {
		if e.ID == "" {
			e.ID = EdgeID(e.Source, e.Target)
		}
		var err error
		if g, err = g.AddEdge(e); err != nil {
			return Graph{}, nil, fmt.Errorf("%w: %w", ErrInvalidWorkflowFormat, err)
		}
	}
	if err := validateAcyclic(g.Nodes, g.Edges); err != nil {
		return Graph{}, nil, fmt.Errorf("%w: %w", ErrInvalidWorkflowFormat, err)
	}

	return g, TemplatesFromGraph(g), nil
}
