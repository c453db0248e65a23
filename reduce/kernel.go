package reduce

import "github.com/katalvlaran/domsolve/instance"

// Kernelize applies the enabled rules in order, repeating full passes until
// one pass changes nothing (or MaxPasses is reached). Cheap rules run first
// so the expensive ones see an already-shrunk instance.
//
// Running Kernelize again on its own output changes nothing, unless
// SplitCheck stopped it short of the fixed point.
//
// With SplitCheck, every pass that removed vertices or arcs is followed by
// a connectivity check, O(V + A).
func Kernelize(in *instance.Instance, opts ...Option) Stats {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	rules := o.rules()
	st := Stats{Fired: make(map[string]int, len(rules))}
	for o.MaxPasses == 0 || st.Passes < o.MaxPasses {
		st.Passes++
		order, size := in.Order(), in.Size()
		fired := false
		for _, r := range rules {
			if in.Empty() {
				return st
			}
			if r.apply(in) {
				st.Fired[r.name]++
				fired = true
			}
		}
		if !fired {
			break
		}
		if o.SplitCheck && (in.Order() < order || in.Size() < size) && len(in.Components()) > 1 {
			st.Split = true
			break
		}
	}
	return st
}
