package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Options configures an Editor.
type Options struct {
	// Logger receives mutation and rejection logs. Defaults to log.Default().
	Logger *log.Logger
}

// Editor is the single authority over a workflow: it owns the Graph, the
// Template Registry and the Selection, and persists every change to its
// Store before making it visible. Operations are serialized; each runs to
// completion before the next one starts.
type Editor struct {
	mu    sync.Mutex
	store Store
	log   *log.Logger

	graph     Graph
	templates Templates
	selection Selection
}

// Open restores an Editor from store. Missing slots start empty; a slot that
// cannot be decoded is logged and also starts empty.
func Open(ctx context.Context, store Store, opts Options) (*Editor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	e := &Editor{
		store:     store,
		log:       logger,
		graph:     Empty(),
		templates: Templates{},
	}

	data, err := store.Get(ctx, SlotWorkflow)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("workflow: load %s: %w", SlotWorkflow, err)
	default:
		if g, err := Unmarshal(data); err != nil {
			logger.Warn("discarding unreadable workflow snapshot", "err", err)
		} else {
			e.graph = g
		}
	}

	data, err = store.Get(ctx, SlotTemplates)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("workflow: load %s: %w", SlotTemplates, err)
	default:
		if ts, err := UnmarshalTemplates(data); err != nil {
			logger.Warn("discarding unreadable template snapshot", "err", err)
		} else {
			e.templates = ts
		}
	}

	logger.Debug("workflow opened", "nodes", len(e.graph.Nodes), "edges", len(e.graph.Edges), "templates", len(e.templates))
	return e, nil
}

// Graph returns the current snapshot.
func (e *Editor) Graph() Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Clone()
}

// Templates returns the current registry.
func (e *Editor) Templates() Templates {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(Templates, len(e.templates))
	copy(out, e.templates)
	return out
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// commit persists the given snapshots and then installs them. A nil argument
// leaves that part of the state alone. If a write fails nothing is installed
// and a graph slot already written is restored.
func (e *Editor) commit(ctx context.Context, g *Graph, ts *Templates) error {
	if g != nil {
		data, err := Marshal(*g)
		if err != nil {
			return err
		}
		if err := e.store.Set(ctx, SlotWorkflow, data); err != nil {
			return fmt.Errorf("workflow: save %s: %w", SlotWorkflow, err)
		}
	}
	if ts != nil {
		data, err := MarshalTemplates(*ts)
		if err != nil {
			return err
		}
		if err := e.store.Set(ctx, SlotTemplates, data); err != nil {
			if g != nil {
				if prev, merr := Marshal(e.graph); merr == nil {
					if rerr := e.store.Set(ctx, SlotWorkflow, prev); rerr != nil {
						e.log.Error("restore workflow snapshot", "err", rerr)
					}
				}
			}
			return fmt.Errorf("workflow: save %s: %w", SlotTemplates, err)
		}
	}

	if g != nil {
		e.graph = *g
		if !e.selection.Valid(e.graph) {
			e.selection = Selection{}
		}
	}
	if ts != nil {
		e.templates = *ts
	}
	return nil
}

// AddTemplate adds a template for label to the registry.
func (e *Editor) AddTemplate(ctx context.Context, label string) (Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts, t, err := e.templates.Add(label)
	if err != nil {
		return Template{}, err
	}
	if err := e.commit(ctx, nil, &ts); err != nil {
		return Template{}, err
	}
	e.log.Debug("template added", "id", t.ID, "label", t.Label)
	return t, nil
}

// RemoveTemplate deletes a template from the registry. Nodes already placed
// from it are kept.
func (e *Editor) RemoveTemplate(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts, err := e.templates.Remove(id)
	if err != nil {
		return err
	}
	if err := e.commit(ctx, nil, &ts); err != nil {
		return err
	}
	e.log.Debug("template removed", "id", id)
	return nil
}

// Drop places a node for payload p dropped at the canvas point at.
func (e *Editor) Drop(ctx context.Context, p Payload, at Position) (Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, node, err := Place(e.graph, p, at)
	if err != nil {
		e.log.Error("drop rejected", "template", p.ID, "err", err)
		return Node{}, err
	}
	if err := e.commit(ctx, &g, nil); err != nil {
		return Node{}, err
	}
	e.log.Debug("node placed", "id", node.ID, "label", node.Data.Label, "x", node.Position.X, "y", node.Position.Y)
	return node, nil
}

// Connect validates and adds the edge source -> target.
func (e *Editor) Connect(ctx context.Context, source, target string) (Edge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, edge, err := e.graph.Connect(Connection{Source: source, Target: target})
	if err != nil {
		e.log.Warn("connection rejected", "source", source, "target", target, "reason", err)
		return Edge{}, err
	}
	if err := e.commit(ctx, &g, nil); err != nil {
		return Edge{}, err
	}
	e.log.Debug("connected", "id", edge.ID, "source", source, "target", target)
	return edge, nil
}

// MoveNode updates the position of a node. Unknown ids are ignored.
func (e *Editor) MoveNode(ctx context.Context, id string, pos Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.graph.UpdateNodePosition(id, pos)
	return e.commit(ctx, &g, nil)
}

// ApplyNodeChanges applies a batch of node deltas atomically.
func (e *Editor) ApplyNodeChanges(ctx context.Context, changes []NodeChange) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.graph.ApplyNodeChanges(changes)
	if err != nil {
		e.log.Warn("node changes rejected", "count", len(changes), "err", err)
		return err
	}
	if err := e.commit(ctx, &g, nil); err != nil {
		return err
	}
	e.log.Debug("node changes applied", "count", len(changes))
	return nil
}

// ApplyEdgeChanges applies a batch of edge deltas atomically. Added and
// rewired edges must pass Validate against the graph as it stands before
// that delta; a replaced edge is checked without itself.
func (e *Editor) ApplyEdgeChanges(ctx context.Context, changes []EdgeChange) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.graph
	for i, c := range changes {
		if c.Item != nil {
			var err error
			switch c.Type {
			case ChangeAdd:
				err = Validate(g, Connection{Source: c.Item.Source, Target: c.Item.Target})
			case ChangeReplace:
				if _, ok := g.Edge(c.ID); ok {
					err = Validate(g.RemoveEdge(c.ID), Connection{Source: c.Item.Source, Target: c.Item.Target})
				}
			}
			if err != nil {
				e.log.Warn("edge changes rejected", "index", i, "reason", err)
				return fmt.Errorf("edge change %d (%s): %w", i, c.Type, err)
			}
		}
		var err error
		if g, err = g.applyEdgeChange(c); err != nil {
			e.log.Warn("edge changes rejected", "index", i, "err", err)
			return fmt.Errorf("edge change %d (%s): %w", i, c.Type, err)
		}
	}
	if err := e.commit(ctx, &g, nil); err != nil {
		return err
	}
	e.log.Debug("edge changes applied", "count", len(changes))
	return nil
}

// Select marks a node or edge as the deletion target, replacing any previous
// selection.
func (e *Editor) Select(kind SelectionKind, id string) (Selection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := Select(e.graph, kind, id)
	if err != nil {
		return Selection{}, err
	}
	e.selection = s
	e.log.Debug("selected", "kind", kind, "id", id)
	return s, nil
}

// ClearSelection drops the current selection.
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{}
}

// DeleteSelected removes the selected node (with its edges) or edge and
// returns what was deleted. With nothing selected it returns an empty
// Selection and does nothing.
func (e *Editor) DeleteSelected(ctx context.Context) (Selection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	deleted := e.selection
	if deleted.Empty() {
		return Selection{}, nil
	}
	g, _ := DeleteSelected(e.graph, deleted)
	if err := e.commit(ctx, &g, nil); err != nil {
		return Selection{}, err
	}
	e.selection = Selection{}
	e.log.Debug("deleted", "kind", deleted.Kind, "id", deleted.ID)
	return deleted, nil
}

// Export returns the current graph as pretty-printed JSON.
func (e *Editor) Export() ([]byte, error) {
	return Export(e.Graph())
}

// Import replaces the graph and registry with the contents of data. On any
// failure the current state is kept.
func (e *Editor) Import(ctx context.Context, data []byte) error {
	g, ts, err := Import(data)
	if err != nil {
		e.log.Warn("import rejected", "err", err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.commit(ctx, &g, &ts); err != nil {
		return err
	}
	e.selection = Selection{}
	e.log.Info("workflow imported", "nodes", len(g.Nodes), "edges", len(g.Edges))
	return nil
}

// ImportFrom reads a whole document from r and imports it.
func (e *Editor) ImportFrom(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("workflow: read import: %w", err)
	}
	return e.Import(ctx, data)
}

// Reset clears both persisted slots and empties the graph, the registry and
// the selection.
func (e *Editor) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(ctx, SlotWorkflow); err != nil {
		return fmt.Errorf("workflow: clear %s: %w", SlotWorkflow, err)
	}
	if err := e.store.Delete(ctx, SlotTemplates); err != nil {
		if prev, merr := Marshal(e.graph); merr == nil {
			if rerr := e.store.Set(ctx, SlotWorkflow, prev); rerr != nil {
				e.log.Error("restore workflow snapshot", "err", rerr)
			}
		}
		return fmt.Errorf("workflow: clear %s: %w", SlotTemplates, err)
	}
	e.graph = e.graph.Reset()
	e.templates = Templates{}
	e.selection = Selection{}
	e.log.Info("workflow reset")
	return nil
}
