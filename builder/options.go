// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type Option func(*builderConfig)).
//   - Option constructors panic on meaningless input; constructors never do.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// Option customizes the builder configuration before construction begins.
type Option func(*builderConfig)

// builderConfig aggregates the knobs used by constructors. It is passed by
// value to constructors.
type builderConfig struct {
	// rng drives stochastic constructors; nil means "no randomness".
	rng *rand.Rand
}

// WithRand provides an explicit RNG for stochastic constructors.
// It panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed seeds a fresh RNG for stochastic constructors.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

func newBuilderConfig(opts ...Option) builderConfig {
	var cfg builderConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
