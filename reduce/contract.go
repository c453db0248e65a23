package reduce

import "github.com/katalvlaran/domsolve/instance"

// Contraction merges a pure requirement into a covered neighbour: when u is
// dominated and not excluded and u→v reaches an excluded, undominated v,
// then u takes over v's requirement. Every dominator of v is redirected to
// u, u becomes undominated and v disappears. Dominators(u) afterwards equals
// the old Dominators(v), so the optimum is unchanged.
func Contraction(in *instance.Instance) bool {
	changed := false
	for _, u := range in.Live() {
		if !in.Alive(u) || !in.Dominated(u) || in.Excluded(u) {
			continue
		}
		for _, v := range in.Out(u) {
			if in.Excluded(v) && !in.Dominated(v) && contract(in, u, v) {
				changed = true
				break
			}
		}
	}
	return changed
}

// contract folds v into u along the arc u→v. A non-excluded v is excluded
// first, which callers only do when u covers everything v covers. Vertices
// dominated speculatively are left alone.
func contract(in *instance.Instance, u, v int) bool {
	if in.HiddenLoop(u) || !in.HasArc(u, v) {
		return false
	}
	if !in.Excluded(v) {
		in.MarkExcluded(v)
	}
	in.Undominate(u)
	in.Redirect(v, u)
	in.RemoveVertex(v)
	return true
}
