package workflow

import "fmt"

// Connection is a proposed edge from Source to Target.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Edge returns the edge Connect would add for c.
func (c Connection) Edge() Edge {
	return Edge{ID: EdgeID(c.Source, c.Target), Source: c.Source, Target: c.Target}
}

// Validate decides whether c may become an edge of g. It returns nil to
// accept, or an error matching exactly one of ErrUnknownEndpoint,
// ErrSameLabel, ErrDuplicateConnection or ErrCycleDetected. Rules run in
// that order and the first failure wins.
func Validate(g Graph, c Connection) error {
	src, okSrc := g.Node(c.Source)
	dst, okDst := g.Node(c.Target)
	if !okSrc || !okDst {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEndpoint, c.Source, c.Target)
	}

	// Two instances of the same step may not be wired together.
	if src.Data.Label == dst.Data.Label {
		return fmt.Errorf("%w: %q", ErrSameLabel, src.Data.Label)
	}

	if g.HasConnection(c.Source, c.Target) {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateConnection, c.Source, c.Target)
	}

	if WouldCycle(g.Edges, c.Source, c.Target) {
		return fmt.Errorf("%w: %s -> %s", ErrCycleDetected, c.Source, c.Target)
	}
	return nil
}

// Connect validates c against g and, when accepted, returns the graph with
// the new edge appended. On rejection g is returned unchanged.
func (g Graph) Connect(c Connection) (Graph, Edge, error) {
	if err := Validate(g, c); err != nil {
		return g, Edge{}, err
	}
	e := c.Edge()
	// Ids are plain concatenations, so "a-b"->"c" and "a"->"b-c" collide.
	for n := 2; g.edgeIndex(e.ID) >= 0; n++ {
		e.ID = fmt.Sprintf("%s-%d", EdgeID(c.Source, c.Target), n)
	}
	next, err := g.AddEdge(e)
	if err != nil {
		return g, Edge{}, err
	}
	return next, e, nil
}
