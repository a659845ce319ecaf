package workflow

import "fmt"

// DropOffset shifts a raw drop coordinate so the node lands under the cursor
// rather than to its lower right.
var DropOffset = Position{X: -100, Y: -100}

// Payload is what the drag gesture carries: the dragged template.
type Payload = Template

// NewNodeID returns a node id for a drop of templateID onto g. It is
// "<templateID>-<len(nodes)+1>", advancing the counter past ids already in
// use so repeated drops after deletions stay unique.
func NewNodeID(g Graph, templateID string) string {
	for n := len(g.Nodes) + 1; ; n++ {
		id := fmt.Sprintf("%s-%d", templateID, n)
		if g.nodeIndex(id) < 0 {
			return id
		}
	}
}

// Place turns a template dropped at point into a new node appended to g.
// It never looks at edges.
func Place(g Graph, p Payload, point Position) (Graph, Node, error) {
	node := Node{
		ID:   NewNodeID(g, p.ID),
		Type: NodeTypeCustom,
		Position: Position{
			X: point.X + DropOffset.X,
			Y: point.Y + DropOffset.Y,
		},
		Data: NodeData{Label: p.Label},
	}
	next, err := g.AddNode(node)
	if err != nil {
		return g, Node{}, err
	}
	return next, node, nil
}
