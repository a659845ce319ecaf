package workflow

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	g := build(t,
		[]Node{
			{ID: "node-1-1", Type: NodeTypeCustom, Position: Position{X: 200, Y: 150}, Data: NodeData{Label: "Start"}},
			{ID: "node-2-2", Type: NodeTypeCustom, Position: Position{X: 400.5, Y: -10}, Data: NodeData{Label: "Review"}},
		},
		[]Edge{edge("node-1-1", "node-2-2")},
	)

	data, err := Export(g)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"nodes\": ["), string(data))

	got, ts, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, g, got)
	assert.Equal(t, Templates{{ID: "node-1-1", Label: "Start"}, {ID: "node-2-2", Label: "Review"}}, ts)
}

func TestExportEmpty(t *testing.T) {
	data, err := Export(Graph{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestImportNormalizes(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "a", "data": {"label": "A"}},
			{"id": "b", "type": "custom", "position": {"x": 1, "y": 2}}
		],
		"edges": [{"source": "a", "target": "b"}]
	}`

	g, ts, err := Import([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, DefaultImportPosition, g.Nodes[0].Position)
	assert.Equal(t, Position{X: 1, Y: 2}, g.Nodes[1].Position)
	assert.Equal(t, []Edge{edge("a", "b")}, g.Edges)
	assert.Equal(t, Templates{{ID: "a", Label: "A"}, {ID: "b", Label: "node"}}, ts)
}

func TestImportRejects(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantParse bool
	}{
		{"malformed json", `{"nodes": [`, true},
		{"not an object", `[]`, false},
		{"missing nodes", `{"edges": []}`, false},
		{"missing edges", `{"nodes": []}`, false},
		{"nodes not array", `{"nodes": {}, "edges": []}`, false},
		{"node without id", `{"nodes": [{"data": {"label": "A"}}], "edges": []}`, false},
		{"edge without target", `{"nodes": [{"id": "a"}], "edges": [{"source": "a"}]}`, false},
		{"duplicate node id", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`, false},
		{"dangling edge", `{"nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "b"}]}`, false},
		{
			"cycle",
			`{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"source": "a", "target": "b"}, {"source": "b", "target": "a"}]}`,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Import([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidWorkflowFormat)
			assert.Equal(t, tt.wantParse, errors.Is(err, ErrWorkflowParse))
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := build(t, []Node{node("a", "A"), node("b", "B")}, []Edge{edge("a", "b")})

	data, err := Marshal(g)
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	_, err = Unmarshal([]byte("nope"))
	require.Error(t, err)
}

func TestTemplatesSnapshot(t *testing.T) {
	data, err := MarshalTemplates(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	ts, err := UnmarshalTemplates([]byte(`[{"id":"node-1","label":"Start"}]`))
	require.NoError(t, err)
	assert.Equal(t, Templates{{ID: "node-1", Label: "Start"}}, ts)

	ts, err = UnmarshalTemplates([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, ts)
}
