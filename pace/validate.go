package pace

import "github.com/pkg/errors"

// Validate checks that ds (0-based ids) solves p. The error wraps
// ErrInvalidSolution and names the first vertex or set left uncovered.
func (p *Problem) Validate(ds []int) error {
	switch p.Kind {
	case DominatingSet:
		if miss := p.Graph.Undominated(ds); len(miss) > 0 {
			return errors.Wrapf(ErrInvalidSolution, "%d vertices undominated, first is %d", len(miss), miss[0]+1)
		}
		return nil
	case HittingSet:
		hit := make(map[int]bool, len(ds))
		for _, e := range ds {
			hit[e] = true
		}
		for i, set := range p.Sets {
			ok := false
			for _, e := range set {
				if hit[e] {
					ok = true
					break
				}
			}
			if !ok {
				return errors.Wrapf(ErrInvalidSolution, "set %d is not hit", i+1)
			}
		}
		return nil
	}
	return errors.Wrapf(ErrMalformed, "unknown problem %q", p.Kind)
}
