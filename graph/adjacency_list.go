package graph

import (
	"fmt"
	"sort"

	sg "github.com/soniakeys/graph"
)

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.adj.AdjacencyList) }

// Size returns the number of undirected edges.
func (g *Graph) Size() int { return g.m }

// AddVertices appends k isolated vertices and returns the index of the first.
func (g *Graph) AddVertices(k int) int {
	first := g.Order()
	for i := 0; i < k; i++ {
		g.adj.AdjacencyList = append(g.adj.AdjacencyList, nil)
	}
	return first
}

// AddEdge inserts the undirected edge {u,v}. Adding an existing edge is a
// no-op.
//
// Complexity: O(deg(u)) for the duplicate check.
func (g *Graph) AddEdge(u, v int) error {
	n := g.Order()
	if u < 0 || v < 0 || u >= n || v >= n {
		return fmt.Errorf("AddEdge(%d,%d) with n=%d: %w", u, v, n, ErrVertexOutOfRange)
	}
	if u == v {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrSelfLoop)
	}
	if g.HasEdge(u, v) {
		return nil
	}
	g.adj.AddEdge(sg.NI(u), sg.NI(v))
	g.m++
	return nil
}

// HasEdge reports whether {u,v} is an edge.
func (g *Graph) HasEdge(u, v int) bool {
	n := g.Order()
	if u < 0 || v < 0 || u >= n || v >= n {
		return false
	}
	// scan the shorter list
	a, b := u, v
	if len(g.adj.AdjacencyList[a]) > len(g.adj.AdjacencyList[b]) {
		a, b = b, a
	}
	for _, w := range g.adj.AdjacencyList[a] {
		if int(w) == b {
			return true
		}
	}
	return false
}

// Neighbors returns the neighbours of v in ascending order. The slice is a
// fresh copy.
func (g *Graph) Neighbors(v int) []int {
	nbrs := g.adj.AdjacencyList[v]
	out := make([]int, len(nbrs))
	for i, w := range nbrs {
		out[i] = int(w)
	}
	sort.Ints(out)
	return out
}

// Edges returns every edge once as {u,v} with u < v, ordered by u then v.
func (g *Graph) Edges() [][2]int {
	out := make([][2]int, 0, g.m)
	for u := 0; u < g.Order(); u++ {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out = append(out, [2]int{u, v})
			}
		}
	}
	return out
}

// Components returns the vertex lists of the connected components, each
// sorted, in order of their smallest vertex.
func (g *Graph) Components() [][]int {
	var out [][]int
	next := g.adj.ConnectedComponentLists()
	for {
		nodes, _ := next()
		if nodes == nil {
			break
		}
		comp := make([]int, len(nodes))
		for i, v := range nodes {
			comp[i] = int(v)
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}
