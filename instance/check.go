package instance

import "fmt"

// Check verifies the arena bookkeeping and the four status invariants. It
// is meant for tests and debug builds; the engine never calls it on the hot
// path.
func (in *Instance) Check() error {
	active := 0
	for i, a := range in.arcs {
		if a.state != arcActive {
			continue
		}
		active++
		if !in.Alive(a.from) || !in.Alive(a.to) {
			return fmt.Errorf("arc %d (%d→%d) touches a dead vertex: %w", i, a.from, a.to, ErrInvariant)
		}
		if idx, ok := in.index[arcKey(a.from, a.to)]; !ok || idx != i {
			return fmt.Errorf("arc %d (%d→%d) missing from index: %w", i, a.from, a.to, ErrInvariant)
		}
		if in.dominated[a.to] {
			return fmt.Errorf("dominated vertex %d has incoming arc from %d: %w", a.to, a.from, ErrInvariant)
		}
		if in.excluded[a.from] {
			return fmt.Errorf("excluded vertex %d has outgoing arc to %d: %w", a.from, a.to, ErrInvariant)
		}
		if a.mirror >= 0 {
			m := in.arcs[a.mirror]
			if m.state != arcActive || m.mirror != i || m.from != a.to || m.to != a.from {
				return fmt.Errorf("arc %d (%d→%d) has a broken mirror: %w", i, a.from, a.to, ErrInvariant)
			}
		}
	}
	if active != len(in.index) {
		return fmt.Errorf("index holds %d arcs, arena %d: %w", len(in.index), active, ErrInvariant)
	}
	for _, v := range in.Live() {
		if in.excluded[v] && !in.dominated[v] && in.InDegree(v) == 0 {
			return fmt.Errorf("excluded vertex %d cannot be dominated by anyone: %w", v, ErrInvariant)
		}
	}
	return nil
}
