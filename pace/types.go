// Package pace reads and writes the PACE challenge text formats.
//
// Input files start with a header line "p ds n m" (dominating set: m edge
// lines "u v") or "p hs n m" (hitting set: m lines listing the elements of
// one set). Vertex and element ids are 1-based on disk and 0-based in
// memory. Lines starting with 'c' and blank lines are comments anywhere.
//
// A solution file holds the solution size on its first line, then one id
// per line.
package pace

import (
	"errors"

	"github.com/katalvlaran/domsolve/graph"
)

var (
	// ErrMalformed is returned for any input that does not follow the
	// format. The wrapping error names the offending line.
	ErrMalformed = errors.New("pace: malformed input")

	// ErrInvalidSolution is returned by Validate when a solution does not
	// dominate the graph or misses a set.
	ErrInvalidSolution = errors.New("pace: invalid solution")
)

// Kind is the problem named in the header line.
type Kind string

const (
	// DominatingSet is the "p ds" problem.
	DominatingSet Kind = "ds"
	// HittingSet is the "p hs" problem.
	HittingSet Kind = "hs"
)

// Problem is a parsed input file. Graph is set for DominatingSet, Sets for
// HittingSet; N is the number of vertices or elements.
type Problem struct {
	Kind  Kind
	N     int
	Graph *graph.Graph
	Sets  [][]int
}
