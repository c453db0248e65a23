package vc

import "github.com/katalvlaran/domsolve/instance"

// Extract returns the vertex cover graph of in when every undominated vertex
// has exactly two dominators. ok is false otherwise, and when nothing is
// left to cover.
//
// Complexity: O(V + E) expected.
func Extract(in *instance.Instance) (g *Graph, ok bool) {
	need := in.Undominated()
	if len(need) == 0 {
		return nil, false
	}
	g = &Graph{}
	pos := make(map[int]int)
	at := func(v int) int {
		p, ok := pos[v]
		if !ok {
			p = len(g.Vertices)
			pos[v] = p
			g.Vertices = append(g.Vertices, v)
			g.Adj = append(g.Adj, nil)
		}
		return p
	}
	seen := make(map[[2]int]bool, len(need))
	for _, y := range need {
		d := in.Dominators(y)
		if len(d) != 2 {
			return nil, false
		}
		a, b := at(d[0]), at(d[1])
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			continue
		}
		seen[[2]int{a, b}] = true
		g.Adj[a] = append(g.Adj[a], b)
		g.Adj[b] = append(g.Adj[b], a)
		g.size++
	}
	return g, true
}
