// Package vc handles residual instances that are vertex cover problems:
// every vertex still needing a dominator has exactly two candidates, so a
// solution is a vertex cover of the graph joining each such pair. A minimum
// independent set is the complement of the cover, which makes this the
// clique route as well (a maximum clique is an independent set of the
// complement graph).
//
// Two tools work on that graph:
//
//   - HalfIntegral solves the LP relaxation through a maximum matching of
//     the bipartite double cover (package flow). Vertices at 1 belong to
//     some minimum cover and vertices at 0 to none (Nemhauser–Trotter), so
//     Reduce commits the former and drops the latter.
//   - MinCover finds an exact minimum cover by branch and bound.
package vc

import "errors"

// ErrBranchLimit is returned by MinCover when the search exceeds its branch
// budget.
var ErrBranchLimit = errors.New("vc: branch limit reached")

// Graph is the vertex cover graph of an instance. Vertices holds instance
// indices; Adj lists neighbours by position in Vertices.
type Graph struct {
	Vertices []int
	Adj      [][]int
	size     int
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.Vertices) }

// Size returns the number of edges.
func (g *Graph) Size() int { return g.size }

// Instance maps cover positions back to instance indices.
func (g *Graph) Instance(cover []int) []int {
	res := make([]int, len(cover))
	for i, p := range cover {
		res[i] = g.Vertices[p]
	}
	return res
}

// Half is an LP value counted in halves.
type Half uint8

const (
	Zero    Half = 0
	OneHalf Half = 1
	One     Half = 2
)

// Stats reports what Reduce did.
type Stats struct {
	Placed  int
	Removed int
}

// Changed reports whether Reduce modified the instance.
func (s Stats) Changed() bool { return s.Placed+s.Removed > 0 }
