package workflow

import "fmt"

// ChangeType names the kind of a batched delta reported by the canvas.
type ChangeType string

const (
	ChangeAdd        ChangeType = "add"
	ChangeReplace    ChangeType = "replace"
	ChangePosition   ChangeType = "position"
	ChangeRemove     ChangeType = "remove"
	ChangeSelect     ChangeType = "select"
	ChangeDimensions ChangeType = "dimensions"
)

// NodeChange is a single node delta. Item is used by add and replace,
// Position by position; the remaining kinds only need ID. A replace may not
// change the node's id or label.
type NodeChange struct {
	Type     ChangeType `json:"type"`
	ID       string     `json:"id,omitempty"`
	Position *Position  `json:"position,omitempty"`
	Item     *Node      `json:"item,omitempty"`
}

// EdgeChange is a single edge delta. Item is used by add and replace.
type EdgeChange struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id,omitempty"`
	Item *Edge      `json:"item,omitempty"`
}

// ApplyNodeChanges applies changes in order and returns the resulting graph.
// The batch is atomic: if any delta fails, g is returned with the error.
// Removing a node also removes its incident edges.
func (g Graph) ApplyNodeChanges(changes []NodeChange) (Graph, error) {
	next := g
	for i, c := range changes {
		var err error
		next, err = next.applyNodeChange(c)
		if err != nil {
			return g, fmt.Errorf("node change %d (%s): %w", i, c.Type, err)
		}
	}
	return next, nil
}

func (g Graph) applyNodeChange(c NodeChange) (Graph, error) {
	switch c.Type {
	case ChangeAdd:
		if c.Item == nil {
			return g, fmt.Errorf("%w: add without item", ErrInvalidChange)
		}
		return g.AddNode(*c.Item)
	case ChangeReplace:
		if c.Item == nil {
			return g, fmt.Errorf("%w: replace without item", ErrInvalidChange)
		}
		i := g.nodeIndex(c.ID)
		if i < 0 {
			return g, nil
		}
		if c.Item.ID != c.ID {
			return g, fmt.Errorf("%w: node id is immutable (%q -> %q)", ErrInvalidChange, c.ID, c.Item.ID)
		}
		// Labels are fixed at creation; connections were validated against them.
		if c.Item.Data.Label != g.Nodes[i].Data.Label {
			return g, fmt.Errorf("%w: node label is immutable (%q -> %q)", ErrInvalidChange, g.Nodes[i].Data.Label, c.Item.Data.Label)
		}
		next := g.Clone()
		next.Nodes[i] = *c.Item
		return next, nil
	case ChangePosition:
		if c.Position == nil {
			// Drag in progress without a resolved coordinate.
			return g, nil
		}
		return g.UpdateNodePosition(c.ID, *c.Position), nil
	case ChangeRemove:
		return g.RemoveNode(c.ID), nil
	case ChangeSelect, ChangeDimensions:
		return g, nil
	default:
		return g, fmt.Errorf("%w: unknown node change %q", ErrInvalidChange, c.Type)
	}
}

// ApplyEdgeChanges applies changes in order and returns the resulting graph.
// Like ApplyNodeChanges the batch is atomic. Add deltas are subject to the
// AddEdge storage rules only; see Editor.ApplyEdgeChanges for validated adds.
func (g Graph) ApplyEdgeChanges(changes []EdgeChange) (Graph, error) {
	next := g
	for i, c := range changes {
		var err error
		next, err = next.applyEdgeChange(c)
		if err != nil {
			return g, fmt.Errorf("edge change %d (%s): %w", i, c.Type, err)
		}
	}
	return next, nil
}

func (g Graph) applyEdgeChange(c EdgeChange) (Graph, error) {
	switch c.Type {
	case ChangeAdd:
		if c.Item == nil {
			return g, fmt.Errorf("%w: add without item", ErrInvalidChange)
		}
		return g.AddEdge(*c.Item)
	case ChangeReplace:
		if c.Item == nil {
			return g, fmt.Errorf("%w: replace without item", ErrInvalidChange)
		}
		i := g.edgeIndex(c.ID)
		if i < 0 {
			return g, nil
		}
		if _, err := g.RemoveEdge(c.ID).AddEdge(*c.Item); err != nil {
			return g, err
		}
		next := g.Clone()
		next.Edges[i] = *c.Item
		return next, nil
	case ChangeRemove:
		return g.RemoveEdge(c.ID), nil
	case ChangeSelect:
		return g, nil
	default:
		return g, fmt.Errorf("%w: unknown edge change %q", ErrInvalidChange, c.Type)
	}
}
