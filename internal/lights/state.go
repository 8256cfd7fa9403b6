// Package lights encodes the on/off pattern of a panel's indicator lights.
package lights

import (
	"errors"
	"math/bits"
	"strings"
)

// MaxWidth is the number of lights a State can hold.
const MaxWidth = 16

// State is a bit vector with one bit per light: bit i set means light i is on.
//
// Bits at or above the panel width are always zero. Two states are equal iff
// their words are equal.
type State uint16

var (
	ErrOutOfBounds = errors.New("light index out of bounds")
	ErrSyntax      = errors.New("malformed light diagram")
)

// FromOn folds the given indices into an all-off state with XOR.
// An index listed twice cancels itself out.
func FromOn(indices ...int) (State, error) {
	return State(0).ToggleMany(indices...)
}

func (s State) Toggle(mask State) State {
	return s ^ mask
}

// ToggleMany flips each listed light. On error s is returned unchanged.
func (s State) ToggleMany(indices ...int) (State, error) {
	out := s
	for _, i := range indices {
		if i < 0 || i >= MaxWidth {
			return s, ErrOutOfBounds
		}
		out ^= 1 << uint(i)
	}
	return out, nil
}

func (s State) Get(i int) (bool, error) {
	if i < 0 || i >= MaxWidth {
		return false, ErrOutOfBounds
	}
	return s&(1<<uint(i)) != 0, nil
}

func (s State) Count() int {
	return bits.OnesCount16(uint16(s))
}

// Width returns the smallest width that holds every lit light.
func (s State) Width() int {
	return bits.Len16(uint16(s))
}

// Mask returns a state with the low width bits set.
func Mask(width int) State {
	if width >= MaxWidth {
		return ^State(0)
	}
	if width <= 0 {
		return 0
	}
	return State(1)<<uint(width) - 1
}

// Fits reports whether no light at or above width is on.
func (s State) Fits(width int) bool {
	return s&^Mask(width) == 0
}

// Format renders the state as a diagram such as "[.##.]".
func (s State) Format(width int) string {
	var b strings.Builder
	b.Grow(width + 2)
	b.WriteByte('[')
	for i := range width {
		if s&(1<<uint(i)) != 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (s State) String() string {
	return s.Format(max(s.Width(), 1))
}

// Parse reads a diagram such as "[.##.]" and returns the state and its width.
func Parse(diagram string) (State, int, error) {
	inner, ok := strings.CutPrefix(diagram, "[")
	if !ok {
		return 0, 0, ErrSyntax
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return 0, 0, ErrSyntax
	}
	if len(inner) == 0 || len(inner) > MaxWidth {
		return 0, 0, ErrOutOfBounds
	}
	var s State
	for i := range len(inner) {
		switch inner[i] {
		case '#':
			s |= 1 << uint(i)
		case '.':
		default:
			return 0, 0, ErrSyntax
		}
	}
	return s, len(inner), nil
}
