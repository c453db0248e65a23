// Package flow computes maximum flows on integer-capacity networks with
// vertices 0..n-1.
//
// A Network stores every arc together with its reverse residual arc, so a
// flow computation updates capacities in place and leaves the residual
// network behind. SourceSide reads the minimum cut off that residual.
//
// The key algorithm offered is:
//
//   - Dinic
//   - Method: level graph construction + blocking flow via DFS.
//   - Time:   O(E · √V) on unit-capacity networks, O(V² · E) in general.
//   - Memory: O(V + E) for levels, arc iterators and recursion state.
//
// The vertex-cover LP reduction builds a unit network over the bipartite
// double cover of a graph, so matchings and König covers come out of one
// Dinic run.
package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexOutOfRange is returned when an arc endpoint, the source or the
	// sink is not in [0,n).
	ErrVertexOutOfRange = errors.New("flow: vertex out of range")

	// ErrSourceIsSink is returned when source and sink coincide.
	ErrSourceIsSink = errors.New("flow: source equals sink")
)

// CapacityError is returned when an arc has a negative capacity.
type CapacityError struct {
	From, To int
	Cap      int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("flow: negative capacity on arc %d→%d: %d", e.From, e.To, e.Cap)
}

// Options configures Dinic.
//   - LevelRebuildInterval: rebuild the level graph every N augmentations;
//     0 rebuilds only when a blocking flow is complete.
type Options struct {
	LevelRebuildInterval int
}

// DefaultOptions returns Options with no forced level rebuilds.
func DefaultOptions() Options {
	return Options{LevelRebuildInterval: 0}
}

// Network is a directed flow network. Arc 2i is the i-th added arc and arc
// 2i+1 its reverse residual arc.
type Network struct {
	adj  [][]int // arc ids leaving each vertex
	to   []int
	cap  []int // residual capacity
	orig []int // capacity as added; 0 for reverse arcs
}

// NewNetwork returns an arcless network on n vertices.
func NewNetwork(n int) *Network {
	if n < 0 {
		n = 0
	}
	return &Network{adj: make([][]int, n)}
}

// Order returns the number of vertices.
func (net *Network) Order() int { return len(net.adj) }

// AddArc adds u→v with capacity c and returns its id. Loops are accepted
// and never carry flow.
func (net *Network) AddArc(u, v, c int) (int, error) {
	n := net.Order()
	if u < 0 || v < 0 || u >= n || v >= n {
		return -1, fmt.Errorf("AddArc(%d,%d) with n=%d: %w", u, v, n, ErrVertexOutOfRange)
	}
	if c < 0 {
		return -1, CapacityError{From: u, To: v, Cap: c}
	}
	id := len(net.to)
	net.to = append(net.to, v, u)
	net.cap = append(net.cap, c, 0)
	net.orig = append(net.orig, c, 0)
	net.adj[u] = append(net.adj[u], id)
	net.adj[v] = append(net.adj[v], id+1)
	return id, nil
}

// Flow returns the flow currently carried by arc id.
func (net *Network) Flow(id int) int { return net.orig[id] - net.cap[id] }

// Residual returns the remaining capacity of arc id.
func (net *Network) Residual(id int) int { return net.cap[id] }

// Reset restores every arc to its added capacity.
func (net *Network) Reset() {
	copy(net.cap, net.orig)
}

func (net *Network) check(source, sink int) error {
	n := net.Order()
	if source < 0 || source >= n || sink < 0 || sink >= n {
		return fmt.Errorf("source=%d sink=%d with n=%d: %w", source, sink, n, ErrVertexOutOfRange)
	}
	if source == sink {
		return ErrSourceIsSink
	}
	return nil
}
