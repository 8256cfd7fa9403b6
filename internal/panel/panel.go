// Package panel describes one machine: its indicator lights, its buttons
// and its joltage requirements.
package panel

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/henrytill/panels-go/internal/joltage"
	"github.com/henrytill/panels-go/internal/lights"
)

var ErrMalformed = errors.New("malformed panel")

// Button is the set of light or counter indices wired to one button.
type Button uint16

// NewButton wires a button to the given indices. Each index must be in
// range and appear once.
func NewButton(indices ...int) (Button, error) {
	var b Button
	for _, i := range indices {
		if i < 0 || i >= lights.MaxWidth {
			return 0, fmt.Errorf("%w: button index %d", ErrMalformed, i)
		}
		if b.Has(i) {
			return 0, fmt.Errorf("%w: button index %d listed twice", ErrMalformed, i)
		}
		b |= 1 << uint(i)
	}
	return b, nil
}

func (b Button) Has(i int) bool {
	return i >= 0 && i < lights.MaxWidth && b&(1<<uint(i)) != 0
}

// Indices returns the wired indices in ascending order.
func (b Button) Indices() []int {
	out := make([]int, 0, bits.OnesCount16(uint16(b)))
	for m := uint16(b); m != 0; m &= m - 1 {
		out = append(out, bits.TrailingZeros16(m))
	}
	return out
}

// Mask returns the button as a toggle mask over the lights.
func (b Button) Mask() lights.State {
	return lights.State(b)
}

func (b Button) String() string {
	idx := b.Indices()
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Panel is immutable once built by New.
type Panel struct {
	Width   int
	Lights  lights.State
	Buttons []Button
	Joltage joltage.Vector
}

// HasJoltage reports whether the panel carries joltage requirements.
func (p *Panel) HasJoltage() bool {
	return p.Joltage.Size() > 0
}

// New validates the wiring and returns a panel. counters may be nil for a
// panel that is only solved for its lights.
func New(width int, target lights.State, buttons []Button, counters []int) (*Panel, error) {
	if width < 1 || width > lights.MaxWidth {
		return nil, fmt.Errorf("%w: width %d not in 1..%d", ErrMalformed, width, lights.MaxWidth)
	}
	if !target.Fits(width) {
		return nil, fmt.Errorf("%w: target %v wider than %d lights", ErrMalformed, target, width)
	}
	for i, b := range buttons {
		if !lights.State(b).Fits(width) {
			return nil, fmt.Errorf("%w: button %d %v references an index >= %d", ErrMalformed, i, b, width)
		}
	}

	var vec joltage.Vector
	if counters != nil {
		if len(counters) != width {
			return nil, fmt.Errorf("%w: %d joltage counters for %d lights", ErrMalformed, len(counters), width)
		}
		var err error
		vec, err = joltage.Encode(counters)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	return &Panel{
		Width:   width,
		Lights:  target,
		Buttons: append([]Button(nil), buttons...),
		Joltage: vec,
	}, nil
}

func (p *Panel) String() string {
	var b strings.Builder
	b.WriteString(p.Lights.Format(p.Width))
	for _, btn := range p.Buttons {
		b.WriteByte(' ')
		b.WriteString(btn.String())
	}
	if p.HasJoltage() {
		b.WriteByte(' ')
		b.WriteString(p.Joltage.String())
	}
	return b.String()
}
