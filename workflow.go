package workflow

// NodeTypeCustom is the only node kind the canvas currently renders.
const NodeTypeCustom = "custom"

// Graph is the aggregate workflow state: nodes in z-order and directed edges.
// A Graph value is treated as an immutable snapshot; every mutation returns a
// new Graph and leaves the receiver untouched.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a placed, positioned instance of a template.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
}

// Position is a coordinate in canvas space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData carries the display payload of a node.
type NodeData struct {
	Label string `json:"label" yaml:"label"`
}

// Edge is a directed connection between two node ids.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Template is a reusable stencil that can be dropped onto the canvas.
type Template struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Empty returns a graph with no nodes and no edges.
func Empty() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// EdgeID derives the id of the edge connecting source to target.
func EdgeID(source, target string) string {
	return "xy-edge__" + source + "-" + target
}
