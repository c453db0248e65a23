// Package treewidth solves an instance exactly over a tree decomposition of
// its underlying graph.
//
// A Builder derives decompositions from vertex elimination orderings
// (min-degree, min-fill and degeneracy) and keeps the narrowest. Nice turns
// a decomposition into a nice one with Leaf, Introduce, Forget, Join and
// Copy nodes, and Solve runs the dynamic program over it.
//
// DP state: every bag vertex carries one ternary digit,
//
//	0  waiting    not chosen, still needs a dominator
//	1  dominated  not chosen, covered (or never needed covering)
//	2  chosen     in the solution
//
// and a bag state is the base-3 number of its digits, digit i belonging to
// the i-th vertex of the sorted bag. A table maps each reachable state to
// the minimum cost of the forgotten-and-bag part of the solution.
package treewidth

import (
	"errors"
	"time"
)

var (
	// ErrNoDecomposition is returned by Builder.Build when the search was
	// interrupted by its timer or its context.
	ErrNoDecomposition = errors.New("treewidth: no decomposition found")

	// ErrTooWide is returned by Solve when a bag exceeds the size budget.
	ErrTooWide = errors.New("treewidth: decomposition too wide")
)

// Heuristic names an elimination ordering.
type Heuristic string

const (
	MinDegree  Heuristic = "min-degree"
	MinFill    Heuristic = "min-fill"
	Degeneracy Heuristic = "degeneracy"
)

// MaxBagLimit is the largest bag a uint64 state can encode (3^40 < 2^64).
const MaxBagLimit = 40

// Options configures both the Builder and Solve.
type Options struct {
	// Timeout bounds one Build call; 0 disables the timer.
	Timeout time.Duration
	// Heuristics are tried in order; the narrowest result wins.
	Heuristics []Heuristic
	// MinFillMaxOrder skips min-fill on graphs with more vertices.
	MinFillMaxOrder int
	// MaxBag is the largest bag Solve accepts.
	MaxBag int
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the defaults: a 10s build budget, all three
// heuristics, min-fill up to 600 vertices and bags of at most 12 vertices.
func DefaultOptions() Options {
	return Options{
		Timeout:         10 * time.Second,
		Heuristics:      []Heuristic{MinDegree, MinFill, Degeneracy},
		MinFillMaxOrder: 600,
		MaxBag:          12,
	}
}

// WithTimeout sets the build budget.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithHeuristics replaces the list of elimination heuristics.
func WithHeuristics(hs ...Heuristic) Option {
	return func(o *Options) { o.Heuristics = append([]Heuristic(nil), hs...) }
}

// WithMaxBag sets the bag budget of Solve, capped at MaxBagLimit.
func WithMaxBag(n int) Option {
	return func(o *Options) {
		if n > MaxBagLimit {
			n = MaxBagLimit
		}
		if n > 0 {
			o.MaxBag = n
		}
	}
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Decomposition is a tree decomposition over instance vertex indices.
type Decomposition struct {
	// Bags[i] is the sorted vertex list of tree node i.
	Bags [][]int
	// Adj[i] lists the tree neighbours of node i.
	Adj [][]int
	// Width is the largest bag size minus one.
	Width int
	// Heuristic produced this decomposition.
	Heuristic Heuristic
}
