package vc

import (
	"context"

	"github.com/katalvlaran/domsolve/flow"
	"github.com/katalvlaran/domsolve/instance"
)

// HalfIntegral returns an optimal half-integral solution of the vertex
// cover LP of g, indexed by position.
//
// The network has a left copy v and a right copy n+v of every vertex, with
// source→v and n+v→sink of capacity 1 and v→n+w uncut for every edge vw in
// both directions. After a maximum flow, S is the source side of the
// minimum cut and (L∖S) ∪ (R∩S) is a minimum cover of the double cover;
// x(v) counts how many copies of v it holds.
//
// Complexity: O(E · √V).
func (g *Graph) HalfIntegral(ctx context.Context) ([]Half, error) {
	n := g.Order()
	source, sink := 2*n, 2*n+1
	net := flow.NewNetwork(2*n + 2)
	for v := 0; v < n; v++ {
		if _, err := net.AddArc(source, v, 1); err != nil {
			return nil, err
		}
		if _, err := net.AddArc(n+v, sink, 1); err != nil {
			return nil, err
		}
		for _, w := range g.Adj[v] {
			if _, err := net.AddArc(v, n+w, n+1); err != nil {
				return nil, err
			}
		}
	}
	if _, err := flow.Dinic(ctx, net, source, sink, flow.DefaultOptions()); err != nil {
		return nil, err
	}
	side := net.SourceSide(source)
	x := make([]Half, n)
	for v := 0; v < n; v++ {
		if !side[v] {
			x[v]++
		}
		if side[n+v] {
			x[v]++
		}
	}
	return x, nil
}

// Reduce applies the Nemhauser–Trotter reduction when in is a vertex cover
// instance: vertices at 1 are placed, then vertices at 0 that are left
// dominated with nothing to cover are removed. Instances of any other shape
// are left alone.
func Reduce(ctx context.Context, in *instance.Instance) (Stats, error) {
	var st Stats
	g, ok := Extract(in)
	if !ok {
		return st, nil
	}
	x, err := g.HalfIntegral(ctx)
	if err != nil {
		return st, err
	}
	before := len(in.DS())
	var zero []int
	for p, v := range g.Vertices {
		switch x[p] {
		case One:
			if in.Alive(v) {
				in.PlaceInSolution(v)
			}
		case Zero:
			zero = append(zero, v)
		}
	}
	st.Placed = len(in.DS()) - before
	for _, v := range zero {
		if in.Alive(v) && in.Dominated(v) && in.OutDegree(v) == 0 {
			in.RemoveVertex(v)
			st.Removed++
		}
	}
	return st, nil
}
