// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_cactus.go - RandomCactus(n) constructor: random connected graphs in
// which every edge lies on at most one cycle.
//
// Model: start from a single root; while vertices remain, pick a uniformly
// random anchor among those placed so far and hang either a pendant edge or
// a fresh cycle of length 3..maxCactusCycle through it. Every block is an
// edge or a cycle, and most vertices end up as cut vertices, so the graphs
// stress block-cut reductions.
//
// Contract:
//   - n ≥ 1.
//   - cfg.rng must be set.
//
// Complexity: O(n) time.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

const (
	minCactusVertices = 1
	maxCactusCycle    = 5
)

// RandomCactus returns a Constructor that appends a random cactus on n
// vertices.
func RandomCactus(n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minCactusVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCactus, n, minCactusVertices, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodCactus, ErrNeedRandSource)
		}
		first := g.AddVertices(n)
		placed := 1
		for placed < n {
			anchor := first + cfg.rng.Intn(placed)
			// length counts the anchor; 2 is a pendant edge
			length := 2 + cfg.rng.Intn(maxCactusCycle-1)
			if length-1 > n-placed {
				length = n - placed + 1
			}
			prev := anchor
			for i := 1; i < length; i++ {
				v := first + placed
				placed++
				if err := g.AddEdge(prev, v); err != nil {
					return fmt.Errorf("%s: %w", methodCactus, err)
				}
				prev = v
			}
			if length > 2 {
				if err := g.AddEdge(prev, anchor); err != nil {
					return fmt.Errorf("%s: %w", methodCactus, err)
				}
			}
		}
		return nil
	}
}
