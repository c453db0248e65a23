// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_star.go - Star(leaves) and Wheel(n) constructors.
//
// Contract:
//   - Star: leaves ≥ 1; the centre is the first appended vertex.
//   - Wheel: n ≥ 4 total vertices; hub first, rim is a cycle on the rest.
//
// Complexity: O(n) time.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

const (
	minStarLeaves = 1
	minWheelNodes = 4
)

// Star returns a Constructor that appends K_{1,leaves}.
func Star(leaves int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		if leaves < minStarLeaves {
			return fmt.Errorf("%s: leaves=%d < min=%d: %w", methodStar, leaves, minStarLeaves, ErrTooFewVertices)
		}
		center := g.AddVertices(leaves + 1)
		for i := 1; i <= leaves; i++ {
			if err := g.AddEdge(center, center+i); err != nil {
				return fmt.Errorf("%s: %w", methodStar, err)
			}
		}
		return nil
	}
}

// Wheel returns a Constructor that appends the wheel W_n: a hub joined to
// every vertex of a cycle on n-1 vertices.
func Wheel(n int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
		}
		hub := g.AddVertices(n)
		rim := n - 1
		for i := 0; i < rim; i++ {
			u, v := hub+1+i, hub+1+(i+1)%rim
			if err := g.AddEdge(hub, u); err != nil {
				return fmt.Errorf("%s: %w", methodWheel, err)
			}
			if err := g.AddEdge(u, v); err != nil {
				return fmt.Errorf("%s: %w", methodWheel, err)
			}
		}
		return nil
	}
}
