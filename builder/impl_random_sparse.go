// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_random_sparse.go - RandomSparse(n, m) constructor.
//
// Canonical model: Erdős–Rényi G(n,m), m distinct edges drawn uniformly from
// the n(n-1)/2 possible ones, sampled by soniakeys' GnmUndirected.
//
// Contract:
//   - n ≥ 1, 0 ≤ m ≤ n(n-1)/2.
//   - cfg.rng must be set (WithSeed / WithRand), else ErrNeedRandSource.
//
// Complexity: O(n + m) expected.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
	sg "github.com/soniakeys/graph"
)

const minRandomSparseVertices = 1

// RandomSparse returns a Constructor that appends a G(n,m) random graph.
func RandomSparse(n, m int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if m < 0 || m > n*(n-1)/2 {
			return fmt.Errorf("%s: m=%d with n=%d: %w", methodRandomSparse, m, n, ErrInvalidEdgeCount)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}
		sample := sg.GnmUndirected(n, m, cfg.rng)
		first := g.AddVertices(n)
		for v, nbrs := range sample.AdjacencyList {
			for _, w := range nbrs {
				if int(w) <= v {
					continue
				}
				if err := g.AddEdge(first+v, first+int(w)); err != nil {
					return fmt.Errorf("%s: %w", methodRandomSparse, err)
				}
			}
		}
		return nil
	}
}
