// Package graph holds the plain undirected input graph handed to the solver.
//
// A Graph is a simple undirected graph over vertices 0..n-1, stored as a
// soniakeys adjacency list so the library's component routines can run on
// it directly. Parallel edges are collapsed
// and self-loops are rejected; both are meaningless for domination.
package graph

import (
	"errors"

	sg "github.com/soniakeys/graph"
)

var (
	// ErrVertexOutOfRange is returned when an edge endpoint is not in [0,n).
	ErrVertexOutOfRange = errors.New("graph: vertex out of range")

	// ErrSelfLoop is returned when AddEdge is called with u == v.
	ErrSelfLoop = errors.New("graph: self-loop")
)

// Graph is a simple undirected graph with integer vertices 0..Order()-1.
type Graph struct {
	adj sg.Undirected
	m   int
}

// New returns an edgeless graph on n vertices.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{adj: sg.Undirected{AdjacencyList: make(sg.AdjacencyList, n)}}
}
