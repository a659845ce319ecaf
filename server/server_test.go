package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/kv"
)

func newTestApp(t *testing.T) (*fiber.App, *workflow.Editor) {
	t.Helper()
	logger := log.New(io.Discard)
	e, err := workflow.Open(context.Background(), kv.NewMemory(), workflow.Options{Logger: logger})
	require.NoError(t, err)
	return New(e, logger), e
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func notice(t *testing.T, out map[string]any) string {
	t.Helper()
	n, ok := out["notice"].(map[string]any)
	require.True(t, ok, "response has no notice: %v", out)
	return n["message"].(string)
}

func TestScenario(t *testing.T) {
	app, e := newTestApp(t)

	resp, _ := do(t, app, "POST", "/drop", map[string]any{"id": "start", "label": "Start", "x": 300, "y": 200})
	require.Equal(t, 201, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	resp, _ = do(t, app, "POST", "/drop", map[string]any{"id": "end", "label": "End", "x": 500, "y": 200})
	require.Equal(t, 201, resp.StatusCode)

	g := e.Graph()
	require.Len(t, g.Nodes, 2)
	n1, n2 := g.Nodes[0].ID, g.Nodes[1].ID
	assert.Equal(t, workflow.Position{X: 200, Y: 100}, g.Nodes[0].Position)

	resp, out := do(t, app, "POST", "/connect", workflow.Connection{Source: n1, Target: n2})
	require.Equal(t, 201, resp.StatusCode)
	assert.NotNil(t, out["edge"])

	resp, out = do(t, app, "POST", "/connect", workflow.Connection{Source: n2, Target: n1})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "This connection would create a circular dependency!", notice(t, out))

	resp, out = do(t, app, "POST", "/selection", map[string]any{"kind": "node", "id": n1})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Right-clicked node: Start", notice(t, out))

	resp, out = do(t, app, "POST", "/delete", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Node deleted!", notice(t, out))

	g = e.Graph()
	assert.Empty(t, g.Edges)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, n2, g.Nodes[0].ID)

	// Nothing selected any more.
	resp, _ = do(t, app, "POST", "/delete", nil)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestConnectRejections(t *testing.T) {
	app, e := newTestApp(t)
	ctx := context.Background()
	a, err := e.Drop(ctx, workflow.Payload{ID: "t", Label: "X"}, workflow.Position{})
	require.NoError(t, err)
	b, err := e.Drop(ctx, workflow.Payload{ID: "t", Label: "X"}, workflow.Position{})
	require.NoError(t, err)

	resp, out := do(t, app, "POST", "/connect", workflow.Connection{Source: a.ID, Target: b.ID})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Cannot connect nodes with the same label!", notice(t, out))

	resp, _ = do(t, app, "POST", "/connect", workflow.Connection{Source: a.ID, Target: "ghost"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/connect", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestNodeChanges(t *testing.T) {
	app, e := newTestApp(t)
	n, err := e.Drop(context.Background(), workflow.Payload{ID: "t", Label: "X"}, workflow.Position{})
	require.NoError(t, err)

	resp, _ := do(t, app, "PATCH", "/nodes", []workflow.NodeChange{
		{Type: workflow.ChangePosition, ID: n.ID, Position: &workflow.Position{X: 7, Y: 8}},
		{Type: workflow.ChangeSelect, ID: n.ID},
	})
	require.Equal(t, 200, resp.StatusCode)
	got, _ := e.Graph().Node(n.ID)
	assert.Equal(t, workflow.Position{X: 7, Y: 8}, got.Position)

	resp, _ = do(t, app, "PATCH", "/nodes", []workflow.NodeChange{{Type: "resize", ID: n.ID}})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestEdgeChangesRejectCycle(t *testing.T) {
	app, e := newTestApp(t)
	ctx := context.Background()
	a, err := e.Drop(ctx, workflow.Payload{ID: "a", Label: "A"}, workflow.Position{})
	require.NoError(t, err)
	b, err := e.Drop(ctx, workflow.Payload{ID: "b", Label: "B"}, workflow.Position{})
	require.NoError(t, err)
	c, err := e.Drop(ctx, workflow.Payload{ID: "c", Label: "C"}, workflow.Position{})
	require.NoError(t, err)
	_, err = e.Connect(ctx, a.ID, b.ID)
	require.NoError(t, err)
	bc, err := e.Connect(ctx, b.ID, c.ID)
	require.NoError(t, err)

	resp, out := do(t, app, "PATCH", "/edges", []workflow.EdgeChange{
		{Type: workflow.ChangeReplace, ID: bc.ID, Item: &workflow.Edge{ID: bc.ID, Source: b.ID, Target: a.ID}},
	})
	assert.Equal(t, 422, resp.StatusCode)
	assert.Equal(t, "This connection would create a circular dependency!", notice(t, out))
	assert.Len(t, e.Graph().Edges, 2)
	assert.True(t, e.Graph().HasConnection(b.ID, c.ID))
}

func TestNodeChangesRejectRelabel(t *testing.T) {
	app, e := newTestApp(t)
	n, err := e.Drop(context.Background(), workflow.Payload{ID: "t", Label: "X"}, workflow.Position{})
	require.NoError(t, err)

	relabeled := n
	relabeled.Data.Label = "Y"
	resp, _ := do(t, app, "PATCH", "/nodes", []workflow.NodeChange{{Type: workflow.ChangeReplace, ID: n.ID, Item: &relabeled}})
	assert.Equal(t, 400, resp.StatusCode)
	got, _ := e.Graph().Node(n.ID)
	assert.Equal(t, "X", got.Data.Label)
}

func TestTemplates(t *testing.T) {
	app, e := newTestApp(t)

	resp, out := do(t, app, "POST", "/templates", map[string]string{"label": "  Review "})
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "Node added to the sidebar!", notice(t, out))
	require.Equal(t, workflow.Templates{{ID: "node-1", Label: "Review"}}, e.Templates())

	resp, out = do(t, app, "POST", "/templates", map[string]string{"label": "   "})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Please enter a label for the node!", notice(t, out))

	resp, _ = do(t, app, "DELETE", "/templates/node-1", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, e.Templates())

	resp, _ = do(t, app, "DELETE", "/templates/node-1", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestExport(t *testing.T) {
	app, e := newTestApp(t)
	_, err := e.Drop(context.Background(), workflow.Payload{ID: "t", Label: "X"}, workflow.Position{X: 100, Y: 100})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "workflow.json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	g, err := workflow.Unmarshal(body)
	require.NoError(t, err)
	assert.Equal(t, e.Graph(), g)

	req = httptest.NewRequest("GET", "/export?format=dot", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "workflow.dot")

	req = httptest.NewRequest("GET", "/export?format=bmp", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestImport(t *testing.T) {
	app, e := newTestApp(t)
	doc := `{"nodes":[{"id":"n1","data":{"label":"X"}}],"edges":[]}`

	req := httptest.NewRequest("POST", "/import", strings.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	n, ok := e.Graph().Node("n1")
	require.True(t, ok)
	assert.Equal(t, workflow.DefaultImportPosition, n.Position)

	// Broken files leave the graph alone.
	req = httptest.NewRequest("POST", "/import", strings.NewReader(`{"nodes":[`))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	_, ok = e.Graph().Node("n1")
	assert.True(t, ok)
}

func TestImportMultipart(t *testing.T) {
	app, e := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "workflow.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"nodes":[{"id":"a","data":{"label":"A"}},{"id":"b","data":{"label":"B"}}],"edges":[{"source":"a","target":"b"}]}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	g := e.Graph()
	assert.Len(t, g.Nodes, 2)
	assert.Equal(t, []workflow.Edge{{ID: "xy-edge__a-b", Source: "a", Target: "b"}}, g.Edges)
}

func TestReset(t *testing.T) {
	app, e := newTestApp(t)
	_, err := e.AddTemplate(context.Background(), "X")
	require.NoError(t, err)

	resp, out := do(t, app, "POST", "/reset", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Workflow has been reset!", notice(t, out))
	assert.Empty(t, e.Templates())
	assert.Equal(t, workflow.Empty(), e.Graph())
}
