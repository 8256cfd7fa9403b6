package solver

// cost is the result of one search branch: either a press count or no
// valid path at all. The zero value is unreachable.
type cost struct {
	n  int
	ok bool
}

var unreachable = cost{}

func presses(n int) cost {
	return cost{n: n, ok: true}
}

// plus adds k presses; an unreachable cost stays unreachable.
func (c cost) plus(k int) cost {
	if !c.ok {
		return c
	}
	return cost{n: c.n + k, ok: true}
}

func (c cost) less(other cost) bool {
	if !c.ok {
		return false
	}
	return !other.ok || c.n < other.n
}

func minCost(a, b cost) cost {
	if b.less(a) {
		return b
	}
	return a
}
