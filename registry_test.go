package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAdd(t *testing.T) {
	var ts Templates

	ts, first, err := ts.Add("  Start  ")
	require.NoError(t, err)
	assert.Equal(t, Template{ID: "node-1", Label: "Start"}, first)

	ts, second, err := ts.Add("Review")
	require.NoError(t, err)
	assert.Equal(t, "node-2", second.ID)
	assert.Len(t, ts, 2)

	got, _, err := ts.Add(" \t ")
	require.ErrorIs(t, err, ErrEmptyLabel)
	assert.Equal(t, ts, got)
}

func TestTemplatesAddAfterRemove(t *testing.T) {
	ts := Templates{{ID: "node-1", Label: "A"}, {ID: "node-2", Label: "B"}}
	ts, err := ts.Remove("node-1")
	require.NoError(t, err)

	ts, added, err := ts.Add("C")
	require.NoError(t, err)
	assert.Equal(t, "node-3", added.ID)
	assert.Len(t, ts, 2)
}

func TestTemplatesRemove(t *testing.T) {
	ts := Templates{{ID: "node-1", Label: "A"}, {ID: "node-2", Label: "B"}}

	got, err := ts.Remove("node-1")
	require.NoError(t, err)
	assert.Equal(t, Templates{{ID: "node-2", Label: "B"}}, got)
	assert.Len(t, ts, 2, "receiver must not change")

	_, err = ts.Remove("node-9")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplatesFromGraph(t *testing.T) {
	g := build(t, []Node{node("a", "A"), {ID: "b"}}, nil)
	assert.Equal(t, Templates{{ID: "a", Label: "A"}, {ID: "b", Label: "node"}}, TemplatesFromGraph(g))
	assert.Empty(t, TemplatesFromGraph(Empty()))
}
