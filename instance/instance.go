package instance

import (
	"fmt"

	"github.com/katalvlaran/domsolve/graph"
	"github.com/soniakeys/bits"
)

// New returns an instance of n isolated, undominated, non-excluded vertices
// whose ids are 0..n-1.
func New(n int) *Instance {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return newWithIDs(ids)
}

func newWithIDs(ids []int) *Instance {
	n := len(ids)
	in := &Instance{
		ids:        ids,
		alive:      bits.New(n),
		live:       n,
		dominated:  make([]bool, n),
		excluded:   make([]bool, n),
		hiddenLoop: make([]bool, n),
		out:        make([][]int, n),
		in:         make([][]int, n),
		hiddenIn:   make([][]int, n),
		index:      make(map[uint64]int),
	}
	in.alive.SetAll()
	return in
}

// FromGraph builds the dominating-set instance of g: every edge becomes a
// reciprocal pair of covering arcs.
func FromGraph(g *graph.Graph) *Instance {
	in := New(g.Order())
	for _, e := range g.Edges() {
		in.AddEdge(e[0], e[1])
	}
	return in
}

// FromSets builds the hitting-set instance over elements 0..n-1: a minimum
// set of elements meeting every set. Elements become dominated candidate
// vertices with ids 0..n-1; each set becomes an excluded requirement vertex
// with id n+i and an arc from each of its elements. An empty set makes the
// instance infeasible and is rejected.
func FromSets(n int, sets [][]int) (*Instance, error) {
	in := New(n + len(sets))
	for v := 0; v < n; v++ {
		in.dominated[v] = true
	}
	for i, set := range sets {
		r := n + i
		if len(set) == 0 {
			return nil, fmt.Errorf("set %d is empty: %w", i, ErrSetElement)
		}
		for _, e := range set {
			if e < 0 || e >= n {
				return nil, fmt.Errorf("set %d element %d with n=%d: %w", i, e, n, ErrSetElement)
			}
			in.AddArc(e, r)
		}
		in.excluded[r] = true
	}
	return in, nil
}

// AddEdge adds the reciprocal arcs u→v and v→u and pairs them as mirrors.
// Arcs forbidden by the status invariants are skipped.
func (in *Instance) AddEdge(u, v int) {
	a := in.AddArc(u, v)
	b := in.AddArc(v, u)
	if a >= 0 && b >= 0 {
		in.pair(a, b)
	}
}

// AddArc adds the covering arc u→v and returns its index, or -1 when the arc
// is a self-loop, already active, points into a dominated vertex, or leaves
// an excluded one.
func (in *Instance) AddArc(u, v int) int {
	in.mustAlive(u)
	in.mustAlive(v)
	if u == v || in.dominated[v] || in.excluded[u] {
		return -1
	}
	if _, ok := in.index[arcKey(u, v)]; ok {
		return -1
	}
	idx := len(in.arcs)
	in.arcs = append(in.arcs, arc{from: u, to: v, mirror: -1})
	in.out[u] = append(in.out[u], idx)
	in.in[v] = append(in.in[v], idx)
	in.index[arcKey(u, v)] = idx
	return idx
}

func (in *Instance) pair(a, b int) {
	in.arcs[a].mirror = b
	in.arcs[b].mirror = a
}

// Cap returns the arena size: the number of vertex slots ever allocated.
func (in *Instance) Cap() int { return len(in.ids) }

// Order returns the number of live vertices.
func (in *Instance) Order() int { return in.live }

// Size returns the number of active arcs.
func (in *Instance) Size() int { return len(in.index) }

// Empty reports whether no live vertex remains.
func (in *Instance) Empty() bool { return in.live == 0 }

// Alive reports whether slot v holds a live vertex.
func (in *Instance) Alive(v int) bool {
	return v >= 0 && v < len(in.ids) && in.alive.Bit(v) == 1
}

// ID returns the original id of v.
func (in *Instance) ID(v int) int { return in.ids[v] }

// Dominated reports the dominated flag of v.
func (in *Instance) Dominated(v int) bool { return in.dominated[v] }

// Excluded reports the excluded flag of v.
func (in *Instance) Excluded(v int) bool { return in.excluded[v] }

// HiddenLoop reports whether v was dominated speculatively and still holds
// hidden incoming arcs.
func (in *Instance) HiddenLoop(v int) bool { return in.hiddenLoop[v] }

// DS returns the original ids committed to the solution so far.
func (in *Instance) DS() []int { return append([]int(nil), in.ds...) }

// Translation returns the index mapping to the parent this instance was
// derived from, or nil for a root instance.
func (in *Instance) Translation() *Translation { return in.tr }

// Live returns the live vertex indices in ascending order.
func (in *Instance) Live() []int {
	out := make([]int, 0, in.live)
	in.alive.IterateOnes(func(v int) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Out returns the targets of v's active outgoing arcs.
func (in *Instance) Out(v int) []int {
	in.out[v] = in.compact(in.out[v])
	res := make([]int, len(in.out[v]))
	for i, a := range in.out[v] {
		res[i] = in.arcs[a].to
	}
	return res
}

// In returns the sources of v's active incoming arcs.
func (in *Instance) In(v int) []int {
	in.in[v] = in.compact(in.in[v])
	res := make([]int, len(in.in[v]))
	for i, a := range in.in[v] {
		res[i] = in.arcs[a].from
	}
	return res
}

// OutDegree returns the number of active outgoing arcs of v.
func (in *Instance) OutDegree(v int) int {
	in.out[v] = in.compact(in.out[v])
	return len(in.out[v])
}

// InDegree returns the number of active incoming arcs of v.
func (in *Instance) InDegree(v int) int {
	in.in[v] = in.compact(in.in[v])
	return len(in.in[v])
}

// HasArc reports whether the arc u→v is active.
func (in *Instance) HasArc(u, v int) bool {
	_, ok := in.index[arcKey(u, v)]
	return ok
}

// Mirror returns the vertex pair of the mirror of u→v, and whether u→v is
// active and paired.
func (in *Instance) Mirror(u, v int) (from, to int, ok bool) {
	a, found := in.index[arcKey(u, v)]
	if !found || in.arcs[a].mirror < 0 {
		return 0, 0, false
	}
	m := in.arcs[in.arcs[a].mirror]
	return m.from, m.to, true
}

// Dominators returns every vertex whose placement would cover y: the sources
// of its incoming arcs plus y itself when y is not excluded.
func (in *Instance) Dominators(y int) []int {
	d := in.In(y)
	if !in.excluded[y] {
		d = append(d, y)
	}
	return d
}

// Cover returns every undominated vertex that placing x would cover, or nil
// if x is excluded.
func (in *Instance) Cover(x int) []int {
	if in.excluded[x] {
		return nil
	}
	c := in.Out(x)
	if !in.dominated[x] {
		c = append(c, x)
	}
	return c
}

// Undominated returns the live vertices that still need a dominator.
func (in *Instance) Undominated() []int {
	var res []int
	in.alive.IterateOnes(func(v int) bool {
		if !in.dominated[v] {
			res = append(res, v)
		}
		return true
	})
	return res
}

// Solved reports whether every live vertex is dominated.
func (in *Instance) Solved() bool {
	solved := true
	in.alive.IterateOnes(func(v int) bool {
		if !in.dominated[v] {
			solved = false
		}
		return solved
	})
	return solved
}

// Covers reports whether the local vertices in sol cover every undominated
// live vertex. Excluded or dead members make the answer false.
func (in *Instance) Covers(sol []int) bool {
	chosen := make(map[int]bool, len(sol))
	for _, v := range sol {
		if !in.Alive(v) || in.excluded[v] {
			return false
		}
		chosen[v] = true
	}
	for _, y := range in.Undominated() {
		ok := false
		for _, d := range in.Dominators(y) {
			if chosen[d] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (in *Instance) compact(list []int) []int {
	k := 0
	for _, a := range list {
		if in.arcs[a].state == arcActive {
			list[k] = a
			k++
		}
	}
	return list[:k]
}

func (in *Instance) mustAlive(v int) {
	if !in.Alive(v) {
		panic(fmt.Errorf("vertex %d: %w", v, ErrDeadVertex))
	}
}
