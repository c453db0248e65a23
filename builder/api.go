// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// api.go - public entry point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(opts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Every constructor appends its own block of fresh vertices, so composing
//     several constructors yields their disjoint union.
//   - Determinism: same options, seed and constructor order give identical graphs.
//   - Safety: constructors return sentinel errors, never panic.

package builder

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
)

// Constructor appends one topology to g using the resolved builderConfig.
type Constructor func(g *graph.Graph, cfg builderConfig) error

// BuildGraph creates an empty graph, resolves the options and applies every
// constructor in order. Constructor errors are wrapped with "BuildGraph: %w".
//
// Complexity: Σ cost of each constructor.
func BuildGraph(opts []Option, cons ...Constructor) (*graph.Graph, error) {
	g := graph.New(0)
	cfg := newBuilderConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	return g, nil
}

// MustBuild is BuildGraph for fixtures known to be valid; it panics on error.
func MustBuild(opts []Option, cons ...Constructor) *graph.Graph {
	g, err := BuildGraph(opts, cons...)
	if err != nil {
		panic(err)
	}
	return g
}

// Attach returns a new graph made of base and block where block vertex
// blockVertex is identified with base vertex at. The shared vertex becomes a
// cut vertex whenever both sides have other vertices. Block vertex i other
// than blockVertex is renumbered to base.Order() + i (minus one past
// blockVertex).
func Attach(base, block *graph.Graph, at, blockVertex int) (*graph.Graph, error) {
	if at < 0 || at >= base.Order() || blockVertex < 0 || blockVertex >= block.Order() {
		return nil, fmt.Errorf("%s: at=%d blockVertex=%d: %w", methodAttach, at, blockVertex, graph.ErrVertexOutOfRange)
	}
	g := graph.New(base.Order() + block.Order() - 1)
	for _, e := range base.Edges() {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("%s: %w", methodAttach, err)
		}
	}
	remap := func(v int) int {
		switch {
		case v == blockVertex:
			return at
		case v < blockVertex:
			return base.Order() + v
		default:
			return base.Order() + v - 1
		}
	}
	for _, e := range block.Edges() {
		if err := g.AddEdge(remap(e[0]), remap(e[1])); err != nil {
			return nil, fmt.Errorf("%s: %w", methodAttach, err)
		}
	}
	return g, nil
}
