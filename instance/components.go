package instance

import (
	"sort"

	sg "github.com/soniakeys/graph"
)

// Underlying returns the simple undirected graph spanned by the active arcs
// over the live vertices, compacted to nodes 0..k-1. local[i] is the
// instance index of node i.
func (in *Instance) Underlying() (g sg.Undirected, local []int) {
	local = in.Live()
	node := make(map[int]sg.NI, len(local))
	for i, v := range local {
		node[v] = sg.NI(i)
	}
	g.AdjacencyList = make(sg.AdjacencyList, len(local))
	for _, u := range local {
		for _, w := range in.Out(u) {
			// a reciprocal pair contributes a single edge
			if in.HasArc(w, u) && w < u {
				continue
			}
			g.AddEdge(node[u], node[w])
		}
	}
	return g, local
}

// Components returns the live vertices of each connected component of the
// underlying graph, each list sorted, ordered by smallest member.
func (in *Instance) Components() [][]int {
	g, local := in.Underlying()
	next := g.ConnectedComponentLists()
	var comps [][]int
	for {
		nodes, _ := next()
		if nodes == nil {
			break
		}
		comp := make([]int, len(nodes))
		for i, n := range nodes {
			comp[i] = local[n]
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// DecomposeConnectedComponents returns one induced sub-instance per
// connected component, or nil when the instance has fewer than two
// components. Each sub-instance starts with an empty DS and carries its
// Translation back to this instance.
func (in *Instance) DecomposeConnectedComponents() []*Instance {
	comps := in.Components()
	if len(comps) < 2 {
		return nil
	}
	subs := make([]*Instance, len(comps))
	for i, c := range comps {
		subs[i] = in.Induce(c)
	}
	return subs
}

// Induce returns a fresh sub-instance on the given live vertices with their
// ids, statuses and every arc between them.
//
// A speculative domination is read through: a vertex with the hidden-loop
// marker is copied undominated, and its hidden arcs from inside the set are
// copied as active arcs. Sub-instances therefore see the graph as it was
// before the speculation.
func (in *Instance) Induce(vertices []int) *Instance {
	ids := make([]int, len(vertices))
	tr := &Translation{ToChild: make(map[int]int, len(vertices)), ToParent: make([]int, len(vertices))}
	for i, v := range vertices {
		in.mustAlive(v)
		ids[i] = in.ids[v]
		tr.ToChild[v] = i
		tr.ToParent[i] = v
	}
	sub := newWithIDs(ids)
	sub.tr = tr
	for i, v := range vertices {
		sub.dominated[i] = in.dominated[v] && !in.hiddenLoop[v]
		sub.excluded[i] = in.excluded[v]
	}
	copyArc := func(from, to int) {
		cf, okf := tr.ToChild[from]
		ct, okt := tr.ToChild[to]
		if !okf || !okt {
			return
		}
		a := sub.AddArc(cf, ct)
		if a < 0 {
			return
		}
		if b, ok := sub.index[arcKey(ct, cf)]; ok && sub.arcs[b].mirror < 0 {
			sub.pair(a, b)
		}
	}
	for _, v := range vertices {
		for _, w := range in.Out(v) {
			copyArc(v, w)
		}
		if in.hiddenLoop[v] {
			for _, a := range in.hiddenIn[v] {
				h := in.arcs[a]
				if h.state == arcHidden && in.Alive(h.from) && !in.excluded[h.from] {
					copyArc(h.from, v)
				}
			}
		}
	}
	return sub
}

// Clone returns a deep copy of the instance, DS included. Hidden arcs are
// carried over as hidden.
func (in *Instance) Clone() *Instance {
	c := &Instance{
		ids:        append([]int(nil), in.ids...),
		live:       in.live,
		dominated:  append([]bool(nil), in.dominated...),
		excluded:   append([]bool(nil), in.excluded...),
		hiddenLoop: append([]bool(nil), in.hiddenLoop...),
		arcs:       append([]arc(nil), in.arcs...),
		out:        make([][]int, len(in.out)),
		in:         make([][]int, len(in.in)),
		hiddenIn:   make([][]int, len(in.hiddenIn)),
		index:      make(map[uint64]int, len(in.index)),
		ds:         append([]int(nil), in.ds...),
		tr:         in.tr,
	}
	c.alive.Set(in.alive)
	for v := range in.out {
		c.out[v] = append([]int(nil), in.out[v]...)
		c.in[v] = append([]int(nil), in.in[v]...)
		c.hiddenIn[v] = append([]int(nil), in.hiddenIn[v]...)
	}
	for k, a := range in.index {
		c.index[k] = a
	}
	return c
}
