// Package joltage packs a panel's joltage counters into a fixed-size value.
package joltage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxCounters is the number of counters a Vector can hold.
	MaxCounters = 10
	// MaxValue is the largest value a single counter can hold.
	MaxValue = slotMask

	slotBits     = 12
	slotMask     = (1 << slotBits) - 1
	slotsPerWord = 5
	sizeShift    = 60
)

// Vector holds up to MaxCounters counters of slotBits bits each.
//
// Layout: slots 0-4 occupy bits 0..59 of words[0], slots 5-9 occupy bits
// 0..59 of words[1], and the top four bits of words[1] hold the slot count.
//
//	words[0] = | 4 unused | c4 | c3 | c2 | c1 | c0 |
//	words[1] = | size     | c9 | c8 | c7 | c6 | c5 |
//
// A Vector is a comparable value: every operation returns a new Vector and
// the size field is never changed after Encode.
type Vector struct {
	words [2]uint64
}

var (
	ErrOutOfBounds = errors.New("counter index out of bounds")
	ErrOutOfRange  = errors.New("counter value out of range")
	ErrTooMany     = errors.New("too many counters")
	ErrUnderflow   = errors.New("counter already at zero")
	ErrSyntax      = errors.New("malformed joltage list")
)

func locate(i int) (word int, shift uint) {
	return i / slotsPerWord, uint(i%slotsPerWord) * slotBits
}

// Encode packs counts into a Vector. The number of counts becomes the size.
func Encode(counts []int) (Vector, error) {
	if len(counts) > MaxCounters {
		return Vector{}, fmt.Errorf("%w: %d > %d", ErrTooMany, len(counts), MaxCounters)
	}
	var v Vector
	for i, c := range counts {
		if c < 0 || c > MaxValue {
			return Vector{}, fmt.Errorf("%w: counter %d = %d", ErrOutOfRange, i, c)
		}
		w, shift := locate(i)
		v.words[w] |= uint64(c) << shift
	}
	v.words[1] |= uint64(len(counts)) << sizeShift
	return v, nil
}

// Decode returns the active counters in slot order.
func (v Vector) Decode() []int {
	counts := make([]int, v.Size())
	for i := range counts {
		counts[i] = v.getUnchecked(i)
	}
	return counts
}

func (v Vector) Size() int {
	return int(v.words[1] >> sizeShift)
}

func (v Vector) Get(i int) (int, error) {
	if i < 0 || i >= v.Size() {
		return 0, ErrOutOfBounds
	}
	return v.getUnchecked(i), nil
}

func (v Vector) getUnchecked(i int) int {
	w, shift := locate(i)
	return int((v.words[w] >> shift) & slotMask)
}

// CanDecrement reports whether every listed counter is in range and nonzero.
func (v Vector) CanDecrement(indices ...int) bool {
	size := v.Size()
	for _, i := range indices {
		if i < 0 || i >= size || v.getUnchecked(i) == 0 {
			return false
		}
	}
	return true
}

// WithDecremented returns a copy of v with each listed counter reduced by one.
// Decrementing a counter that is already zero fails with ErrUnderflow and
// leaves v untouched.
func (v Vector) WithDecremented(indices ...int) (Vector, error) {
	size := v.Size()
	out := v
	for _, i := range indices {
		if i < 0 || i >= size {
			return v, fmt.Errorf("%w: %d", ErrOutOfBounds, i)
		}
		if out.getUnchecked(i) == 0 {
			return v, fmt.Errorf("%w: counter %d", ErrUnderflow, i)
		}
		w, shift := locate(i)
		out.words[w] -= 1 << shift
	}
	return out, nil
}

func activeMask(size, word int) uint64 {
	n := min(max(size-word*slotsPerWord, 0), slotsPerWord)
	return (uint64(1) << (uint(n) * slotBits)) - 1
}

// IsDepleted reports whether every active counter is zero.
func (v Vector) IsDepleted() bool {
	size := v.Size()
	return v.words[0]&activeMask(size, 0) == 0 && v.words[1]&activeMask(size, 1) == 0
}

// Nonzero returns a bitmask with bit i set for every active counter i that
// is above zero.
func (v Vector) Nonzero() uint16 {
	var m uint16
	for i := range v.Size() {
		if v.getUnchecked(i) != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Sum returns the total of all active counters.
func (v Vector) Sum() int {
	total := 0
	for i := range v.Size() {
		total += v.getUnchecked(i)
	}
	return total
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range v.Size() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v.getUnchecked(i)))
	}
	b.WriteByte('}')
	return b.String()
}

// Parse reads a list such as "{3,5,4,7}".
func Parse(s string) (Vector, error) {
	inner, ok := strings.CutPrefix(s, "{")
	if !ok {
		return Vector{}, ErrSyntax
	}
	inner, ok = strings.CutSuffix(inner, "}")
	if !ok {
		return Vector{}, ErrSyntax
	}
	var counts []int
	if strings.TrimSpace(inner) != "" {
		for field := range strings.SplitSeq(inner, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return Vector{}, fmt.Errorf("%w: %v", ErrSyntax, err)
			}
			counts = append(counts, n)
		}
	}
	return Encode(counts)
}
