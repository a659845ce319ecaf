package workflow

import "fmt"

// SelectionKind is what a Selection points at.
type SelectionKind string

const (
	SelectNone SelectionKind = ""
	SelectNode SelectionKind = "node"
	SelectEdge SelectionKind = "edge"
)

// Selection holds at most one selected node or edge. Selecting one kind
// replaces the other.
type Selection struct {
	Kind SelectionKind `json:"kind,omitempty"`
	ID   string        `json:"id,omitempty"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.Kind == SelectNone
}

// Select returns the selection for the node or edge id in g.
func Select(g Graph, kind SelectionKind, id string) (Selection, error) {
	switch kind {
	case SelectNode:
		if _, ok := g.Node(id); !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
		}
	case SelectEdge:
		if _, ok := g.Edge(id); !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrEdgeNotFound, id)
		}
	default:
		return Selection{}, fmt.Errorf("workflow: unknown selection kind %q", kind)
	}
	return Selection{Kind: kind, ID: id}, nil
}

// Valid reports whether the selection still points at something in g.
func (s Selection) Valid(g Graph) bool {
	switch s.Kind {
	case SelectNode:
		_, ok := g.Node(s.ID)
		return ok
	case SelectEdge:
		_, ok := g.Edge(s.ID)
		return ok
	}
	return false
}

// DeleteSelected removes the selected element from g. A selected node is
// removed together with its incident edges in one step. The returned
// selection is always empty. With nothing selected, g is returned as is.
func DeleteSelected(g Graph, s Selection) (Graph, Selection) {
	switch s.Kind {
	case SelectNode:
		return g.RemoveNode(s.ID), Selection{}
	case SelectEdge:
		return g.RemoveEdge(s.ID), Selection{}
	}
	return g, Selection{}
}
