// Package reduce implements the kernelization rules of the dominating-set
// engine and the fixed-point driver that applies them.
//
// Every rule is a total function on a well-formed instance. It either proves
// the fate of some vertex (placed, excluded, dominated) or shrinks the
// graph, and never increases the optimal remaining cost. Rules report
// whether they changed anything; Kernelize loops until a full pass is quiet.
package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/domsolve/instance"
)

// ErrUnknownRule is returned by CheckRules for a name that is not a rule.
var ErrUnknownRule = errors.New("reduce: unknown rule")

// Rule names used as keys in Stats.
const (
	RuleExtremeDegree = "extreme-degree"
	RuleSubsumption   = "subsumption"
	RuleStrong        = "strong-subsumption"
	RuleRefinement    = "subset-refinement"
	RuleContraction   = "contraction"
)

// Options selects which rules Kernelize applies.
type Options struct {
	// ExtremeDegree enables isolated/antenna/universal placement and removal
	// of dominated vertices with nothing left to cover.
	ExtremeDegree bool
	// Subsumption enables Bloom-filtered pairwise cover-set containment.
	Subsumption bool
	// Strong enables the bidirectional 8-case strong subsumption.
	Strong bool
	// Refinement enables the global partition-refinement pass.
	Refinement bool
	// Contraction enables absorbing excluded requirements into dominated
	// neighbours.
	Contraction bool
	// MaxPasses bounds the number of full passes; 0 means unbounded.
	MaxPasses int
	// SplitCheck stops Kernelize after a shrinking pass that left the live
	// graph disconnected, so the caller can solve the components apart.
	SplitCheck bool
}

// Option configures Kernelize.
type Option func(*Options)

// DefaultOptions enables every rule with no pass limit.
func DefaultOptions() Options {
	return Options{
		ExtremeDegree: true,
		Subsumption:   true,
		Strong:        true,
		Refinement:    true,
		Contraction:   true,
		MaxPasses:     0,
	}
}

// RuleNames lists every rule in the order Kernelize applies them.
func RuleNames() []string {
	return []string{RuleExtremeDegree, RuleSubsumption, RuleStrong, RuleRefinement, RuleContraction}
}

// CheckRules reports the first name that is not a rule.
func CheckRules(names ...string) error {
	known := make(map[string]bool)
	for _, n := range RuleNames() {
		known[n] = true
	}
	for _, n := range names {
		if !known[n] {
			return fmt.Errorf("%q (known: %v): %w", n, RuleNames(), ErrUnknownRule)
		}
	}
	return nil
}

// WithOnly disables every rule except the named ones. Unknown names are
// ignored; validate them with CheckRules.
func WithOnly(names ...string) Option {
	return func(o *Options) {
		on := make(map[string]bool, len(names))
		for _, n := range names {
			on[n] = true
		}
		o.ExtremeDegree = on[RuleExtremeDegree]
		o.Subsumption = on[RuleSubsumption]
		o.Strong = on[RuleStrong]
		o.Refinement = on[RuleRefinement]
		o.Contraction = on[RuleContraction]
	}
}

// WithMaxPasses bounds the number of fixed-point passes.
func WithMaxPasses(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxPasses = n
		}
	}
}

// WithSplitCheck enables or disables the disconnection check.
func WithSplitCheck(on bool) Option {
	return func(o *Options) {
		o.SplitCheck = on
	}
}

// Stats records how often each rule fired and how many passes ran.
type Stats struct {
	Passes int
	Fired  map[string]int
	// Split is set when SplitCheck ended the run early.
	Split bool
}

// Changed reports whether any rule fired.
func (s Stats) Changed() bool {
	for _, n := range s.Fired {
		if n > 0 {
			return true
		}
	}
	return false
}

type rule struct {
	name  string
	apply func(*instance.Instance) bool
}

func (o Options) rules() []rule {
	var rs []rule
	if o.ExtremeDegree {
		rs = append(rs, rule{RuleExtremeDegree, ExtremeDegree})
	}
	if o.Subsumption {
		rs = append(rs, rule{RuleSubsumption, Subsumption})
	}
	if o.Strong {
		rs = append(rs, rule{RuleStrong, StrongSubsumption})
	}
	if o.Refinement {
		rs = append(rs, rule{RuleRefinement, SubsetRefinement})
	}
	if o.Contraction {
		rs = append(rs, rule{RuleContraction, Contraction})
	}
	return rs
}
