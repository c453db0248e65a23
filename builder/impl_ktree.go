// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_ktree.go - PartialKTree(n, k, p) constructor: random graphs of
// treewidth at most k.
//
// Model: start from the clique K_{k+1}; every further vertex is joined to all
// members of a uniformly chosen k-clique created so far, which yields a
// k-tree. Each edge of the k-tree is then kept independently with
// probability p. Deleting edges never increases treewidth.
//
// Contract:
//   - k ≥ 1, n ≥ k+1, 0 ≤ p ≤ 1.
//   - cfg.rng must be set.
//
// Complexity: O(n·k) time and space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

// PartialKTree returns a Constructor that appends a random partial k-tree.
func PartialKTree(n, k int, p float64) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if k < 1 || n < k+1 {
			return fmt.Errorf("%s: n=%d k=%d: %w", methodKTree, n, k, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.3f: %w", methodKTree, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodKTree, ErrNeedRandSource)
		}
		rng := cfg.rng
		first := g.AddVertices(n)
		var edges [][2]int
		// cliques holds every k-clique available for attachment
		var cliques [][]int
		base := make([]int, k+1)
		for i := range base {
			base[i] = i
			for j := 0; j < i; j++ {
				edges = append(edges, [2]int{j, i})
			}
		}
		for skip := 0; skip <= k; skip++ {
			cliques = append(cliques, without(base, skip))
		}
		for v := k + 1; v < n; v++ {
			c := cliques[rng.Intn(len(cliques))]
			for _, u := range c {
				edges = append(edges, [2]int{u, v})
			}
			full := append(append([]int(nil), c...), v)
			for skip := 0; skip < k; skip++ {
				cliques = append(cliques, without(full, skip))
			}
		}
		for _, e := range edges {
			if p < 1 && rng.Float64() >= p {
				continue
			}
			if err := g.AddEdge(first+e[0], first+e[1]); err != nil {
				return fmt.Errorf("%s: %w", methodKTree, err)
			}
		}
		return nil
	}
}

func without(s []int, i int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
