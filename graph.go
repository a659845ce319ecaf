package workflow

import (
	"fmt"
	"slices"
)

// Clone returns a copy of g that shares no backing arrays with it.
func (g Graph) Clone() Graph {
	c := Graph{Nodes: slices.Clone(g.Nodes), Edges: slices.Clone(g.Edges)}
	if c.Nodes == nil {
		c.Nodes = []Node{}
	}
	if c.Edges == nil {
		c.Edges = []Edge{}
	}
	return c
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	i := g.nodeIndex(id)
	if i < 0 {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Edge returns the edge with the given id.
func (g Graph) Edge(id string) (Edge, bool) {
	i := g.edgeIndex(id)
	if i < 0 {
		return Edge{}, false
	}
	return g.Edges[i], true
}

// HasConnection reports whether an edge from source to target exists.
func (g Graph) HasConnection(source, target string) bool {
	return slices.ContainsFunc(g.Edges, func(e Edge) bool {
		return e.Source == source && e.Target == target
	})
}

func (g Graph) nodeIndex(id string) int {
	return slices.IndexFunc(g.Nodes, func(n Node) bool { return n.ID == id })
}

func (g Graph) edgeIndex(id string) int {
	return slices.IndexFunc(g.Edges, func(e Edge) bool { return e.ID == id })
}

// AddNode returns a new graph with node appended.
// Returns ErrDuplicateID if a node with the same id already exists.
func (g Graph) AddNode(node Node) (Graph, error) {
	if g.nodeIndex(node.ID) >= 0 {
		return g, fmt.Errorf("%w: %q", ErrDuplicateID, node.ID)
	}
	next := g.Clone()
	next.Nodes = append(next.Nodes, node)
	return next, nil
}

// RemoveNode returns a new graph without the node and without every edge
// that starts or ends at it. Removing an absent id returns g unchanged.
func (g Graph) RemoveNode(id string) Graph {
	if g.nodeIndex(id) < 0 {
		return g
	}
	next := g.Clone()
	next.Nodes = slices.DeleteFunc(next.Nodes, func(n Node) bool { return n.ID == id })
	next.Edges = slices.DeleteFunc(next.Edges, func(e Edge) bool {
		return e.Source == id || e.Target == id
	})
	return next
}

// AddEdge returns a new graph with edge appended. It only guards the storage
// invariants: both endpoints exist, the id is unused and the (source, target)
// pair is not already connected. Rule checks belong to Validate.
func (g Graph) AddEdge(edge Edge) (Graph, error) {
	if g.nodeIndex(edge.Source) < 0 || g.nodeIndex(edge.Target) < 0 {
		return g, fmt.Errorf("%w: dangling endpoint %s -> %s", ErrInvalidEdge, edge.Source, edge.Target)
	}
	if g.edgeIndex(edge.ID) >= 0 {
		return g, fmt.Errorf("%w: duplicate id %q", ErrInvalidEdge, edge.ID)
	}
	if g.HasConnection(edge.Source, edge.Target) {
		return g, fmt.Errorf("%w: duplicate pair %s -> %s", ErrInvalidEdge, edge.Source, edge.Target)
	}
	next := g.Clone()
	next.Edges = append(next.Edges, edge)
	return next, nil
}

// RemoveEdge returns a new graph without the edge. No-op if absent.
func (g Graph) RemoveEdge(id string) Graph {
	if g.edgeIndex(id) < 0 {
		return g
	}
	next := g.Clone()
	next.Edges = slices.DeleteFunc(next.Edges, func(e Edge) bool { return e.ID == id })
	return next
}

// UpdateNodePosition returns a new graph with the node moved to pos.
// No-op if the node does not exist.
func (g Graph) UpdateNodePosition(id string, pos Position) Graph {
	i := g.nodeIndex(id)
	if i < 0 {
		return g
	}
	next := g.Clone()
	next.Nodes[i].Position = pos
	return next
}

// Reset returns the empty graph.
func (g Graph) Reset() Graph {
	return Empty()
}
