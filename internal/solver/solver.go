// Package solver finds the fewest button presses that configure a panel.
//
// Two searches share the panel data model. SolveToggle matches the indicator
// lights; SolveDepletion drains the joltage counters. Both are pure and
// single-threaded, so independent panels can be solved concurrently with Sum.
package solver

import (
	"errors"
	"fmt"

	"github.com/henrytill/panels-go/internal/panel"
)

var (
	// ErrUnsolvable means no sequence of presses reaches the target.
	ErrUnsolvable = errors.New("panel is unsolvable")
	// ErrInconsistent means an aggregate was requested over panels that
	// include an unsolvable one.
	ErrInconsistent = errors.New("aggregate includes unsolvable panels")
)

type Mode uint8

const (
	Toggle Mode = iota + 1
	Depletion
)

func (m Mode) String() string {
	switch m {
	case Toggle:
		return "toggle"
	case Depletion:
		return "depletion"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "toggle", "lights":
		return Toggle, nil
	case "depletion", "joltage":
		return Depletion, nil
	default:
		return 0, fmt.Errorf("invalid mode: %s", s)
	}
}

func MinToggles(p *panel.Panel) (int, error) {
	return SolveToggle(p.Lights, p.Buttons)
}

func MinDepletion(p *panel.Panel) (int, error) {
	if !p.HasJoltage() {
		return 0, fmt.Errorf("%w: no joltage requirements", panel.ErrMalformed)
	}
	return SolveDepletion(p.Joltage, p.Buttons)
}

// Solve dispatches to the search for mode.
func Solve(p *panel.Panel, mode Mode) (int, error) {
	switch mode {
	case Toggle:
		return MinToggles(p)
	case Depletion:
		return MinDepletion(p)
	default:
		return 0, fmt.Errorf("invalid mode: %v", mode)
	}
}
