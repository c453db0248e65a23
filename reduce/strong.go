package reduce

import "github.com/katalvlaran/domsolve/instance"

// Case codes of a strong-subsumption pair (u, v), v being the vertex that may
// disappear: bit 2 is "u dominated", bit 1 "v dominated", bit 0 "v excluded".
//
//	000  v needs a dominator and may dominate: exclude v if cover(v) ⊆ cover(u);
//	     also drop its requirement when covering u always covers v.
//	001  v is a pure requirement: drop it when covering u always covers v.
//	010  v is covered but may dominate: remove it if cover(v) ⊆ cover(u).
//	011  v is covered and excluded: remove it.
//	100  u is covered, v may dominate: contract v into u if cover(v) ⊆ cover(u).
//	101  u is covered, v is a pure requirement: contract v into u.
//	110  as 010.
//	111  as 011.
const (
	caseOpen          = 0b000
	caseRequirement   = 0b001
	caseCovered       = 0b010
	caseSpent         = 0b011
	caseContractOpen  = 0b100
	caseContractReq   = 0b101
	caseCoveredDomU   = 0b110
	caseSpentDomU     = 0b111
	strongCaseBitDomU = 2
	strongCaseBitDomV = 1
)

// StrongSubsumption examines every adjacent pair (u, v) and resolves v
// according to the pair's status case; see the case table above. It compares
// both directions: cover(v) against cover(u) for v's role as a dominator,
// and dominators(u) against dominators(v) for v's role as a requirement.
func StrongSubsumption(in *instance.Instance) bool {
	changed := false
	for _, v := range in.Live() {
		if !in.Alive(v) {
			continue
		}
		for _, u := range neighbours(in, v) {
			if !in.Alive(u) || !in.Alive(v) {
				break
			}
			if strongPair(in, u, v) {
				changed = true
				break
			}
		}
	}
	return changed
}

func strongCase(in *instance.Instance, u, v int) int {
	c := 0
	if in.Dominated(u) {
		c |= 1 << strongCaseBitDomU
	}
	if in.Dominated(v) {
		c |= 1 << strongCaseBitDomV
	}
	if in.Excluded(v) {
		c |= 1
	}
	return c
}

func strongPair(in *instance.Instance, u, v int) bool {
	switch strongCase(in, u, v) {
	case caseOpen:
		if !coverSubsumed(in, v, u) {
			return false
		}
		if requirementImplied(in, u, v) {
			in.RemoveVertex(v)
			return true
		}
		in.MarkExcluded(v)
		return true
	case caseRequirement:
		if !requirementImplied(in, u, v) {
			return false
		}
		in.RemoveVertex(v)
		return true
	case caseCovered, caseCoveredDomU:
		if !coverSubsumed(in, v, u) {
			return false
		}
		in.RemoveVertex(v)
		return true
	case caseSpent, caseSpentDomU:
		in.RemoveVertex(v)
		return true
	case caseContractOpen:
		if in.Excluded(u) || !coverSubsumed(in, v, u) {
			return false
		}
		return contract(in, u, v)
	case caseContractReq:
		if in.Excluded(u) {
			return false
		}
		return contract(in, u, v)
	}
	return false
}

// coverSubsumed reports whether u is a candidate dominator able to cover
// everything v can.
func coverSubsumed(in *instance.Instance, v, u int) bool {
	if in.Excluded(u) {
		return false
	}
	cv, cu := in.Cover(v), in.Cover(u)
	if bloom(cv)&^bloom(cu) != 0 {
		return false
	}
	return subset(cv, cu)
}

// requirementImplied reports whether u still needs a dominator and every
// dominator of u other than v also dominates v. Then any solution covers v,
// even once v itself is no longer a candidate.
func requirementImplied(in *instance.Instance, u, v int) bool {
	if in.Dominated(u) {
		return false
	}
	du := without(in.Dominators(u), v)
	dv := without(in.Dominators(v), v)
	if len(du) == 0 || bloom(du)&^bloom(dv) != 0 {
		return false
	}
	return subset(du, dv)
}

// neighbours returns the distinct vertices joined to v by an arc in either
// direction.
func neighbours(in *instance.Instance, v int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, list := range [][]int{in.In(v), in.Out(v)} {
		for _, w := range list {
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				out = append(out, w)
			}
		}
	}
	return out
}

func without(set []int, x int) []int {
	out := set[:0:0]
	for _, y := range set {
		if y != x {
			out = append(out, y)
		}
	}
	return out
}
