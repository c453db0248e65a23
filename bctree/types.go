// Package bctree implements the block-cut tree reduction.
//
// The underlying undirected graph of an instance splits into biconnected
// blocks joined at cut vertices. A leaf block touches the rest of the graph
// through a single cut vertex v, so it can be solved on its own as long as
// the interaction through v is settled. Reduce solves each small leaf block
// up to three times:
//
//   - outside: v is assumed dominated from outside the block;
//   - place:   v is forced into the block's solution;
//   - free:    no constraint on v.
//
// If outside is strictly cheaper than free, the block's solution leaves v
// untouched. Otherwise v is placed when the free optimum already uses it or
// place ties with free, and v is marked dominated by the block in the
// remaining case. Non-cut block vertices are removed immediately; cut
// vertices are resolved in a second pass so that no block reads another
// block's half-applied decision.
package bctree

import (
	"context"

	"github.com/katalvlaran/domsolve/instance"
)

// DefaultMaxBlockSize bounds the leaf blocks Reduce attempts.
const DefaultMaxBlockSize = 48

// SolveFunc solves a sub-instance to optimality. On success sub.DS() holds
// an optimal solution of sub. Any error aborts the reduction.
type SolveFunc func(ctx context.Context, sub *instance.Instance) error

// Options configures Reduce.
type Options struct {
	// MaxBlockSize is the largest leaf block, cut vertex included, that is
	// solved. Larger leaf blocks are left alone.
	MaxBlockSize int
}

// Option configures Reduce.
type Option func(*Options)

// DefaultOptions returns Options{MaxBlockSize: DefaultMaxBlockSize}.
func DefaultOptions() Options {
	return Options{MaxBlockSize: DefaultMaxBlockSize}
}

// WithMaxBlockSize sets the leaf-block size limit; values below 2 are
// ignored.
func WithMaxBlockSize(n int) Option {
	return func(o *Options) {
		if n >= 2 {
			o.MaxBlockSize = n
		}
	}
}

// Case is the decision taken for one leaf block.
type Case uint8

const (
	// CaseOutside leaves the cut vertex to the rest of the graph.
	CaseOutside Case = iota + 1
	// CasePlace puts the cut vertex in the solution.
	CasePlace
	// CaseDominated marks the cut vertex dominated by the block's solution.
	CaseDominated
)

func (c Case) String() string {
	switch c {
	case CaseOutside:
		return "outside"
	case CasePlace:
		return "place"
	case CaseDominated:
		return "dominated"
	}
	return "unknown"
}

// Block is a leaf block: its instance vertices, cut vertex included.
type Block struct {
	Cut      int
	Vertices []int
}

// Stats counts the decisions of one Reduce call.
type Stats struct {
	Blocks    int
	Skipped   int
	Outside   int
	Placed    int
	Dominated int
}
