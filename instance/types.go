// Package instance defines the working data model of the dominating-set
// engine: an arena of vertices and directed covering arcs with per-vertex
// status flags and the accumulated partial solution.
//
// An arc u→v means "placing u in the solution covers v". A vertex that is
// not excluded always covers itself; that self-coverage is implicit and never
// stored as an arc. Undirected input edges become reciprocal arc pairs that
// reference each other as mirrors.
//
// Vertices and arcs live in slices addressed by stable indices. Deletion marks
// a slot dead without moving anything, so callers may hold indices across
// mutations. Adjacency accessors return fresh slices, which makes it safe to
// mutate the instance while ranging over their results.
//
// After every exported mutation the following hold:
//
//  1. a dominated vertex has no active incoming arc;
//  2. an excluded vertex has no active outgoing arc;
//  3. an excluded vertex that is not dominated has at least one active
//     incoming arc;
//  4. an arc's mirror, when set, is active and names the arc back.
//
// Check verifies all four.
package instance

import (
	"errors"

	"github.com/soniakeys/bits"
)

var (
	// ErrPlaceExcluded is the panic value raised when an excluded vertex is
	// placed in the solution. It always indicates a reduction bug.
	ErrPlaceExcluded = errors.New("instance: cannot place an excluded vertex")

	// ErrDeadVertex is the panic value raised when a removed vertex is mutated.
	ErrDeadVertex = errors.New("instance: vertex is not alive")

	// ErrInvariant is returned by Check when an invariant does not hold.
	ErrInvariant = errors.New("instance: invariant violated")

	// ErrSetElement is returned by FromSets for an element outside [0,n).
	ErrSetElement = errors.New("instance: set element out of range")
)

// Mode selects how MarkDominated disposes of the incoming arcs it removes.
type Mode uint8

const (
	// Definite deletes the incoming arcs.
	Definite Mode = iota
	// Speculative hides the incoming arcs and sets the hidden-loop marker so
	// that RestoreHidden can undo the domination later.
	Speculative
)

type arcState uint8

const (
	arcActive arcState = iota
	arcHidden
	arcDeleted
)

type arc struct {
	from, to int
	mirror   int // -1 when unpaired
	state    arcState
}

// Translation maps vertex indices between a parent instance and a
// sub-instance derived from it.
type Translation struct {
	// ToChild maps a parent local index to the child local index.
	ToChild map[int]int
	// ToParent maps a child local index to the parent local index.
	ToParent []int
}

// Instance is one working graph with its status arrays and partial solution.
// An Instance is not safe for concurrent mutation.
type Instance struct {
	ids        []int
	alive      bits.Bits
	live       int
	dominated  []bool
	excluded   []bool
	hiddenLoop []bool

	arcs     []arc
	out      [][]int // arc indices, compacted lazily
	in       [][]int
	hiddenIn [][]int
	index    map[uint64]int // (from,to) of active arcs -> arc index

	ds []int
	tr *Translation
}

func arcKey(from, to int) uint64 { return uint64(uint32(from))<<32 | uint64(uint32(to)) }
