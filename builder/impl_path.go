// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_path.go - Path(n) and Cycle(n) constructors.
//
// Contract:
//   - Path: n ≥ 1; Cycle: n ≥ 3 (else ErrTooFewVertices).
//   - Appends n vertices first..first+n-1 and chains them in index order.
//
// Complexity: O(n) time, O(1) extra space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

const (
	minPathNodes  = 1
	minCycleNodes = 3
)

// Path returns a Constructor that appends the path P_n.
func Path(n int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := 1; i < n; i++ {
			if err := g.AddEdge(first+i-1, first+i); err != nil {
				return fmt.Errorf("%s: %w", methodPath, err)
			}
		}
		return nil
	}
}

// Cycle returns a Constructor that appends the cycle C_n.
func Cycle(n int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := 0; i < n; i++ {
			if err := g.AddEdge(first+i, first+(i+1)%n); err != nil {
				return fmt.Errorf("%s: %w", methodCycle, err)
			}
		}
		return nil
	}
}
