package solver

import (
	"github.com/henrytill/panels-go/internal/lights"
	"github.com/henrytill/panels-go/internal/panel"
)

type toggleSearch struct {
	target lights.State
	masks  []lights.State
	best   cost
}

// SolveToggle returns the fewest buttons whose combined toggles turn an
// all-off panel into target. Every button is pressed at most once: toggling
// commutes and is its own inverse, so only the chosen subset matters.
//
// It returns ErrUnsolvable if no subset matches.
func SolveToggle(target lights.State, buttons []panel.Button) (int, error) {
	s := toggleSearch{
		target: target,
		masks:  make([]lights.State, len(buttons)),
	}
	for i, b := range buttons {
		s.masks[i] = b.Mask()
	}
	c := s.search(0, 0, 0)
	if !c.ok {
		return 0, ErrUnsolvable
	}
	return c.n, nil
}

// search returns the cost of reaching the target from current using buttons
// i and later. spent is the number of presses already made on this path and
// is only used to abandon branches that cannot beat the best match so far.
func (s *toggleSearch) search(i int, current lights.State, spent int) cost {
	if current == s.target {
		if c := presses(spent); c.less(s.best) {
			s.best = c
		}
		return presses(0)
	}
	if i == len(s.masks) {
		return unreachable
	}
	if s.best.ok && spent+1 >= s.best.n {
		return unreachable
	}

	skip := s.search(i+1, current, spent)
	press := s.search(i+1, current.Toggle(s.masks[i]), spent+1).plus(1)
	return minCost(skip, press)
}
