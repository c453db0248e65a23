package instance

import "fmt"

// PlaceInSolution commits v to the solution: its id is appended to DS, every
// vertex it covers is marked dominated and v is removed. Former
// out-neighbours left dominated with nothing to cover are removed as well.
//
// It panics with ErrPlaceExcluded if v is excluded.
//
// Complexity: O(deg(v) + Σ in-degree of the covered vertices).
func (in *Instance) PlaceInSolution(v int) {
	in.mustAlive(v)
	if in.excluded[v] {
		panic(fmt.Errorf("vertex %d (id %d): %w", v, in.ids[v], ErrPlaceExcluded))
	}
	in.ds = append(in.ds, in.ids[v])
	covered := in.Out(v)
	in.RemoveVertex(v)
	for _, u := range covered {
		in.MarkDominated(u, Definite)
	}
	for _, u := range covered {
		if in.Alive(u) && in.dominated[u] && in.OutDegree(u) == 0 {
			in.RemoveVertex(u)
		}
	}
}

// PlaceAll places every still-live vertex of vs. Members removed by an
// earlier placement in the same call are skipped: they were dominated and
// had nothing left to cover.
func (in *Instance) PlaceAll(vs []int) {
	for _, v := range vs {
		if in.Alive(v) {
			in.PlaceInSolution(v)
		}
	}
}

// MarkDominated sets v dominated and disposes of its active incoming arcs:
// Definite deletes them, Speculative hides them and sets the hidden-loop
// marker.
func (in *Instance) MarkDominated(v int, mode Mode) {
	in.mustAlive(v)
	in.dominated[v] = true
	for _, a := range in.in[v] {
		if in.arcs[a].state != arcActive {
			continue
		}
		if mode == Speculative {
			in.hide(a)
			in.hiddenIn[v] = append(in.hiddenIn[v], a)
			in.hiddenLoop[v] = true
		} else {
			in.deleteArc(a)
		}
	}
	in.in[v] = in.in[v][:0]
}

// MarkExcluded sets v excluded and deletes its active outgoing arcs.
func (in *Instance) MarkExcluded(v int) {
	in.mustAlive(v)
	in.excluded[v] = true
	for _, a := range in.out[v] {
		if in.arcs[a].state == arcActive {
			in.deleteArc(a)
		}
	}
	in.out[v] = in.out[v][:0]
}

// Undominate clears the dominated flag of v so that it may receive
// incoming arcs again. It panics if v still holds hidden arcs.
func (in *Instance) Undominate(v int) {
	in.mustAlive(v)
	if in.hiddenLoop[v] {
		panic(fmt.Errorf("undominate vertex %d with hidden arcs: %w", v, ErrInvariant))
	}
	in.dominated[v] = false
}

// RemoveVertex deletes v with every incident arc, hidden ones included.
func (in *Instance) RemoveVertex(v int) {
	in.mustAlive(v)
	for _, a := range in.out[v] {
		if in.arcs[a].state == arcActive {
			in.deleteArc(a)
		}
	}
	for _, a := range in.in[v] {
		if in.arcs[a].state == arcActive {
			in.deleteArc(a)
		}
	}
	in.DropHidden(v)
	in.out[v], in.in[v] = nil, nil
	in.alive.SetBit(v, 0)
	in.live--
}

// Clear removes every live vertex. The DS is kept.
func (in *Instance) Clear() {
	for _, v := range in.Live() {
		in.RemoveVertex(v)
	}
}

// Redirect re-points every active arc w→from onto w→to, skipping w == to
// and arcs that already exist. A new arc is paired with an active,
// unpaired to→w. The caller must ensure to may receive arcs.
func (in *Instance) Redirect(from, to int) {
	in.mustAlive(from)
	in.mustAlive(to)
	for _, w := range in.In(from) {
		in.deleteArc(in.index[arcKey(w, from)])
		if w == to {
			continue
		}
		a := in.AddArc(w, to)
		if a < 0 {
			continue
		}
		if b, ok := in.index[arcKey(to, w)]; ok && in.arcs[b].mirror < 0 {
			in.pair(a, b)
		}
	}
}

// RestoreHidden undoes a speculative MarkDominated of v: v becomes
// undominated again and its hidden arcs whose source is still alive and not
// excluded return to the active graph.
func (in *Instance) RestoreHidden(v int) {
	in.mustAlive(v)
	if !in.hiddenLoop[v] {
		return
	}
	hidden := in.hiddenIn[v]
	in.hiddenIn[v] = nil
	in.hiddenLoop[v] = false
	in.dominated[v] = false
	for _, a := range hidden {
		h := in.arcs[a]
		if h.state != arcHidden {
			continue
		}
		in.arcs[a].state = arcDeleted
		if !in.Alive(h.from) || in.excluded[h.from] {
			continue
		}
		b := in.AddArc(h.from, v)
		if b < 0 {
			continue
		}
		if r, ok := in.index[arcKey(v, h.from)]; ok && in.arcs[r].mirror < 0 {
			in.pair(b, r)
		}
	}
}

// DropHidden confirms a speculative domination of v by deleting its hidden
// arcs for good.
func (in *Instance) DropHidden(v int) {
	for _, a := range in.hiddenIn[v] {
		in.arcs[a].state = arcDeleted
	}
	in.hiddenIn[v] = nil
	in.hiddenLoop[v] = false
}

// MergeDS appends the solution of a derived sub-instance to this one.
func (in *Instance) MergeDS(child *Instance) {
	in.ds = append(in.ds, child.ds...)
}

// CommitIDs appends original ids decided outside the instance, such as a
// block solution spliced back by the BC-tree step.
func (in *Instance) CommitIDs(ids ...int) {
	in.ds = append(in.ds, ids...)
}

func (in *Instance) deleteArc(a int) {
	e := &in.arcs[a]
	if e.state == arcActive {
		delete(in.index, arcKey(e.from, e.to))
	}
	e.state = arcDeleted
	if e.mirror >= 0 {
		in.arcs[e.mirror].mirror = -1
		e.mirror = -1
	}
}

func (in *Instance) hide(a int) {
	e := &in.arcs[a]
	delete(in.index, arcKey(e.from, e.to))
	e.state = arcHidden
	if e.mirror >= 0 {
		in.arcs[e.mirror].mirror = -1
		e.mirror = -1
	}
}
