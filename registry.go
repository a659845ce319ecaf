package workflow

import (
	"fmt"
	"slices"
	"strings"
)

// defaultTemplateLabel is used when an imported node carries no label.
const defaultTemplateLabel = "node"

// Templates is the ordered Node Template Registry.
type Templates []Template

// Get returns the template with the given id.
func (ts Templates) Get(id string) (Template, bool) {
	i := slices.IndexFunc(ts, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return Template{}, false
	}
	return ts[i], true
}

// Add returns a new registry with a template for label appended. The label
// is trimmed and must not be blank. Ids are "node-<n>".
func (ts Templates) Add(label string) (Templates, Template, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return ts, Template{}, ErrEmptyLabel
	}
	t := Template{Label: label}
	for n := len(ts) + 1; ; n++ {
		t.ID = fmt.Sprintf("node-%d", n)
		if _, taken := ts.Get(t.ID); !taken {
			break
		}
	}
	next := append(slices.Clone(ts), t)
	return next, t, nil
}

// Remove returns a new registry without the template id.
func (ts Templates) Remove(id string) (Templates, error) {
	if _, ok := ts.Get(id); !ok {
		return ts, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return slices.DeleteFunc(slices.Clone(ts), func(t Template) bool { return t.ID == id }), nil
}

// TemplatesFromGraph derives registry entries from the nodes of g.
func TemplatesFromGraph(g Graph) Templates {
	ts := make(Templates, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		label := n.Data.Label
		if label == "" {
			label = defaultTemplateLabel
		}
		ts = append(ts, Template{ID: n.ID, Label: label})
	}
	return ts
}
