// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// impl_complete.go - Complete(n) constructor.
//
// Complexity: O(n²) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

const minCompleteNodes = 1

// Complete returns a Constructor that appends K_n.
func Complete(n int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		first := g.AddVertices(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := g.AddEdge(first+i, first+j); err != nil {
					return fmt.Errorf("%s: %w", methodComplete, err)
				}
			}
		}
		return nil
	}
}
