package treewidth

// Digit values of a bag state.
const (
	dWaiting   uint64 = 0
	dDominated uint64 = 1
	dChosen    uint64 = 2
)

// pow3[i] = 3^i.
var pow3 = func() [MaxBagLimit + 1]uint64 {
	var p [MaxBagLimit + 1]uint64
	p[0] = 1
	for i := 1; i <= MaxBagLimit; i++ {
		p[i] = p[i-1] * 3
	}
	return p
}()

func digit(s uint64, i int) uint64 { return s / pow3[i] % 3 }

func setDigit(s uint64, i int, d uint64) uint64 {
	return s - digit(s, i)*pow3[i] + d*pow3[i]
}

// insertDigit shifts digits i.. up by one place and stores d at i.
func insertDigit(s uint64, i int, d uint64) uint64 {
	lo, hi := s%pow3[i], s/pow3[i]
	return lo + d*pow3[i] + hi*pow3[i+1]
}

// removeDigit drops digit i and shifts the digits above it down.
func removeDigit(s uint64, i int) uint64 {
	lo, hi := s%pow3[i], s/pow3[i+1]
	return lo + hi*pow3[i]
}

// masks splits a state over k digits into chosen and dominated bitmasks.
func masks(s uint64, k int) (chosen, dom uint64) {
	for i := 0; i < k; i++ {
		switch s % 3 {
		case dChosen:
			chosen |= 1 << uint(i)
		case dDominated:
			dom |= 1 << uint(i)
		}
		s /= 3
	}
	return chosen, dom
}

// encode is the inverse of masks. Chosen wins over dominated.
func encode(k int, chosen, dom uint64) uint64 {
	var s uint64
	for i := k - 1; i >= 0; i-- {
		s *= 3
		switch {
		case chosen&(1<<uint(i)) != 0:
			s += dChosen
		case dom&(1<<uint(i)) != 0:
			s += dDominated
		}
	}
	return s
}

// settled reports whether no digit of s is waiting.
func settled(s uint64, k int) bool {
	for i := 0; i < k; i++ {
		if s%3 == dWaiting {
			return false
		}
		s /= 3
	}
	return true
}

type entry struct {
	cost int
	back uint64 // child state, unused at joins
}

// table maps bag states to their best entry.
type table map[uint64]entry

// relax stores (cost, back) at s if it beats the current entry. Ties keep
// the smaller back state so reconstruction is deterministic.
func (t table) relax(s uint64, cost int, back uint64) {
	if e, ok := t[s]; ok && (e.cost < cost || (e.cost == cost && e.back <= back)) {
		return
	}
	t[s] = entry{cost: cost, back: back}
}
