// Package oracle solves dominating-set residuals exactly with an external
// combinatorial solver.
//
// A residual is encoded as a covering formula: one boolean variable per
// candidate (a live, non-excluded vertex that covers something) and one
// clause per undominated vertex listing the variables of its dominators.
// A minimum model of that formula is a minimum completion of the residual.
//
// Two backends are provided. Gini runs an incremental SAT search that
// tightens a sequential-counter cardinality bound from the greedy solution
// until the bound is unsatisfiable. MaxSAT hands the same clauses to the
// gophersat weighted partial MaxSAT solver with one unit-cost soft clause
// per candidate.
//
// Both honour the context deadline and return ErrBudget when optimality
// could not be proven in time.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/domsolve/instance"
)

var (
	// ErrBudget is returned when the solver ran out of time or was
	// cancelled before proving optimality.
	ErrBudget = errors.New("oracle: budget exhausted")

	// ErrUnsatisfiable is returned for a formula without models. It cannot
	// happen on a well-formed instance.
	ErrUnsatisfiable = errors.New("oracle: covering formula is unsatisfiable")

	// ErrUnknownBackend is returned by New for an unrecognised backend name.
	ErrUnknownBackend = errors.New("oracle: unknown backend")
)

// Oracle computes a minimum completion of an instance residual.
type Oracle interface {
	// Solve returns local vertex indices of an optimal completion of in.
	// It does not mutate in.
	Solve(ctx context.Context, in *instance.Instance) ([]int, error)
}

// Backend names an Oracle implementation.
type Backend string

const (
	// BackendGini is the incremental SAT backend.
	BackendGini Backend = "gini"
	// BackendMaxSAT is the gophersat MaxSAT backend.
	BackendMaxSAT Backend = "maxsat"
)

// DefaultPollInterval is how often a running SAT call checks its context.
const DefaultPollInterval = 20 * time.Millisecond

// Options configures the backends.
type Options struct {
	// PollInterval bounds the latency of cancellation for the gini backend.
	PollInterval time.Duration
}

// Option configures an Oracle.
type Option func(*Options)

// DefaultOptions returns Options{PollInterval: DefaultPollInterval}.
func DefaultOptions() Options {
	return Options{PollInterval: DefaultPollInterval}
}

// WithPollInterval sets the cancellation poll interval; non-positive values
// are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.PollInterval = d
		}
	}
}

// New returns the backend called name.
func New(name Backend, opts ...Option) (Oracle, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch name {
	case BackendGini:
		return &Gini{opts: o}, nil
	case BackendMaxSAT:
		return &MaxSAT{}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownBackend)
}
