package workflow

// WouldCycle reports whether adding source -> target to edges closes a
// directed cycle, i.e. whether source is reachable from target.
// Each node is expanded at most once, so the walk terminates on graphs with
// shared descendants.
func WouldCycle(edges []Edge, source, target string) bool {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	visited := make(map[string]bool)
	stack := []string{target}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == source {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		stack = append(stack, adj[current]...)
	}
	return false
}

// validateAcyclic checks that the whole edge set is free of cycles using DFS.
func validateAcyclic(nodes []Node, edges []Edge) error {
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int, len(nodes))
	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		state[id] = visited
		return false
	}

	// Walk in node order so the result does not depend on map iteration.
	for _, n := range nodes {
		if state[n.ID] == unvisited && dfs(n.ID) {
			return ErrCycleDetected
		}
	}
	return nil
}
