package graph

import "github.com/soniakeys/bits"

// Undominated returns, in ascending order, the vertices that are neither in
// ds nor adjacent to a member of ds. Out-of-range members of ds are ignored.
//
// Complexity: O(n + Σ deg(d) for d in ds).
func (g *Graph) Undominated(ds []int) []int {
	n := g.Order()
	covered := bits.New(n)
	for _, d := range ds {
		if d < 0 || d >= n {
			continue
		}
		covered.SetBit(d, 1)
		for _, w := range g.adj.AdjacencyList[d] {
			covered.SetBit(int(w), 1)
		}
	}
	var out []int
	covered.IterateZeros(func(v int) bool {
		out = append(out, v)
		return true
	})
	return out
}

// IsDominatingSet reports whether every vertex is in ds or adjacent to it.
func (g *Graph) IsDominatingSet(ds []int) bool {
	return len(g.Undominated(ds)) == 0
}
