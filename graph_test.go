package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id, label string) Node {
	return Node{ID: id, Type: NodeTypeCustom, Data: NodeData{Label: label}}
}

func edge(source, target string) Edge {
	return Edge{ID: EdgeID(source, target), Source: source, Target: target}
}

// build creates a graph from nodes and edges, failing the test on any
// storage-rule violation.
func build(t *testing.T, nodes []Node, edges []Edge) Graph {
	t.Helper()
	g := Empty()
	var err error
	for _, n := range nodes {
		g, err = g.AddNode(n)
		require.NoError(t, err)
	}
	for _, e := range edges {
		g, err = g.AddEdge(e)
		require.NoError(t, err)
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := Empty()
	g2, err := g.AddNode(node("a", "A"))
	require.NoError(t, err)

	assert.Empty(t, g.Nodes, "receiver must not change")
	require.Len(t, g2.Nodes, 1)

	_, err = g2.AddNode(node("a", "other"))
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestRemoveNodeCascades(t *testing.T) {
	g := build(t,
		[]Node{node("a", "A"), node("b", "B"), node("c", "C")},
		[]Edge{edge("a", "b"), edge("b", "c"), edge("a", "c")},
	)

	got := g.RemoveNode("b")
	assert.Equal(t, []Node{node("a", "A"), node("c", "C")}, got.Nodes)
	assert.Equal(t, []Edge{edge("a", "c")}, got.Edges)
	assert.Len(t, g.Edges, 3)

	assert.Equal(t, g, g.RemoveNode("missing"))
}

func TestAddEdgeStorageRules(t *testing.T) {
	g := build(t, []Node{node("a", "A"), node("b", "B")}, []Edge{edge("a", "b")})

	tests := []struct {
		name string
		edge Edge
	}{
		{"dangling source", Edge{ID: "x", Source: "zz", Target: "b"}},
		{"dangling target", Edge{ID: "x", Source: "a", Target: "zz"}},
		{"duplicate id", Edge{ID: EdgeID("a", "b"), Source: "b", Target: "a"}},
		{"duplicate pair", Edge{ID: "other", Source: "a", Target: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.AddEdge(tt.edge)
			require.ErrorIs(t, err, ErrInvalidEdge)
			assert.Equal(t, g, got)
		})
	}

	// Reverse direction is a different pair.
	_, err := g.AddEdge(edge("b", "a"))
	require.NoError(t, err)
}

func TestRemoveEdge(t *testing.T) {
	g := build(t, []Node{node("a", "A"), node("b", "B")}, []Edge{edge("a", "b")})

	got := g.RemoveEdge(EdgeID("a", "b"))
	assert.Empty(t, got.Edges)
	assert.Len(t, got.Nodes, 2)
	assert.Equal(t, g, g.RemoveEdge("missing"))
}

func TestUpdateNodePosition(t *testing.T) {
	g := build(t, []Node{node("a", "A")}, nil)

	got := g.UpdateNodePosition("a", Position{X: 5, Y: -3})
	assert.Equal(t, Position{X: 5, Y: -3}, got.Nodes[0].Position)
	assert.Equal(t, Position{}, g.Nodes[0].Position)

	assert.Equal(t, g, g.UpdateNodePosition("missing", Position{X: 1}))
}

func TestCloneIsIndependent(t *testing.T) {
	g := build(t, []Node{node("a", "A")}, nil)
	c := g.Clone()
	c.Nodes[0].Data.Label = "changed"
	assert.Equal(t, "A", g.Nodes[0].Data.Label)

	z := Graph{}.Clone()
	assert.NotNil(t, z.Nodes)
	assert.NotNil(t, z.Edges)
}

func TestReset(t *testing.T) {
	g := build(t, []Node{node("a", "A"), node("b", "B")}, []Edge{edge("a", "b")})
	assert.Equal(t, Empty(), g.Reset())
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, "xy-edge__node-1-1-node-2-2", EdgeID("node-1-1", "node-2-2"))
}
