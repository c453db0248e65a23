// SPDX-License-Identifier: MIT
// Package: domsolve/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w.

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidEdgeCount indicates an edge count outside [0, n(n-1)/2].
var ErrInvalidEdgeCount = errors.New("builder: edge count out of range")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates the builder could not assemble the topology.
var ErrConstructFailed = errors.New("builder: construction failed")

// Method tags used in wrapped error messages.
const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodWheel        = "Wheel"
	methodRandomSparse = "RandomSparse"
	methodKTree        = "KTree"
	methodCactus       = "RandomCactus"
	methodAttach       = "Attach"
)
