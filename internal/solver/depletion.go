package solver

import (
	"fmt"

	"github.com/henrytill/panels-go/internal/joltage"
	"github.com/henrytill/panels-go/internal/panel"
)

type depletionKey struct {
	button int
	state  joltage.Vector
}

type depletionSearch struct {
	targets [][]int
	// reach[i] holds every counter some button at index i or later touches.
	reach []uint16
	memo  map[depletionKey]cost
}

// SolveDepletion returns the fewest presses that bring every counter in
// target down to exactly zero. Buttons are taken in order: a button may be
// pressed any number of times, but once the search moves past it, it is not
// pressed again.
//
// A button that references a counter past target's size is malformed. If no
// sequence of presses depletes target, ErrUnsolvable is returned.
func SolveDepletion(target joltage.Vector, buttons []panel.Button) (int, error) {
	size := target.Size()
	s := depletionSearch{
		targets: make([][]int, len(buttons)),
		reach:   make([]uint16, len(buttons)+1),
		memo:    make(map[depletionKey]cost),
	}
	for i, b := range buttons {
		for _, idx := range b.Indices() {
			if idx >= size {
				return 0, fmt.Errorf("%w: button %d %v references counter %d of %d", panel.ErrMalformed, i, b, idx, size)
			}
		}
		s.targets[i] = b.Indices()
	}
	for i := len(buttons) - 1; i >= 0; i-- {
		s.reach[i] = s.reach[i+1] | uint16(buttons[i])
	}

	c := s.search(0, target)
	if !c.ok {
		return 0, ErrUnsolvable
	}
	return c.n, nil
}

func (s *depletionSearch) search(i int, current joltage.Vector) cost {
	if current.IsDepleted() {
		return presses(0)
	}
	if i == len(s.targets) {
		return unreachable
	}
	if current.Nonzero()&^s.reach[i] != 0 {
		return unreachable
	}

	key := depletionKey{button: i, state: current}
	if c, ok := s.memo[key]; ok {
		return c
	}

	press := unreachable
	if targets := s.targets[i]; len(targets) > 0 {
		if next, err := current.WithDecremented(targets...); err == nil {
			press = s.search(i, next).plus(1)
		}
	}

	advance := unreachable
	if i+1 < len(s.targets) {
		advance = s.search(i+1, current)
	}

	c := minCost(advance, press)
	s.memo[key] = c
	return c
}
