package panel

import (
	"errors"
	"slices"
	"testing"

	"github.com/henrytill/panels-go/internal/joltage"
	"github.com/henrytill/panels-go/internal/lights"
)

func mustButton(t *testing.T, indices ...int) Button {
	t.Helper()
	b, err := NewButton(indices...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestButtonIndices(t *testing.T) {
	b := mustButton(t, 3, 0, 2)
	if got := b.Indices(); !slices.Equal(got, []int{0, 2, 3}) {
		t.Errorf("Indices() = %v", got)
	}
	if b.String() != "(0,2,3)" {
		t.Errorf("String() = %q", b.String())
	}
	if !b.Has(2) || b.Has(1) || b.Has(16) {
		t.Error("Has() mismatch")
	}
	if b.Mask() != 0b1101 {
		t.Errorf("Mask() = %b", b.Mask())
	}
}

func TestNewButtonOutOfRange(t *testing.T) {
	if _, err := NewButton(16); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestNewButtonDuplicateIndex(t *testing.T) {
	if _, err := NewButton(0, 2, 0); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestNew(t *testing.T) {
	target, _ := lights.FromOn(1, 2)
	buttons := []Button{mustButton(t, 3), mustButton(t, 1, 3)}
	p, err := New(4, target, buttons, []int{3, 5, 4, 7})
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasJoltage() {
		t.Error("expected joltage")
	}
	if p.String() != "[.##.] (3) (1,3) {3,5,4,7}" {
		t.Errorf("String() = %q", p.String())
	}

	buttons[0] = mustButton(t, 0)
	if p.Buttons[0] != mustButton(t, 3) {
		t.Error("panel shares the caller's button slice")
	}
}

func TestNewWithoutJoltage(t *testing.T) {
	p, err := New(2, 0b11, []Button{mustButton(t, 0, 1)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.HasJoltage() {
		t.Error("expected no joltage")
	}
}

func TestNewMalformed(t *testing.T) {
	tooMany := make([]int, 11)
	tests := []struct {
		name     string
		width    int
		target   lights.State
		buttons  []Button
		counters []int
		cause    error
	}{
		{"zero width", 0, 0, nil, nil, nil},
		{"too wide", 17, 0, nil, nil, nil},
		{"target too wide", 2, 0b100, nil, nil, nil},
		{"button past width", 4, 0, []Button{mustButton(t, 4)}, nil, nil},
		{"counter count mismatch", 4, 0, nil, []int{1, 2}, nil},
		{"counter too large", 2, 0, nil, []int{1, 4096}, joltage.ErrOutOfRange},
		{"too many counters", 11, 0, nil, tooMany, joltage.ErrTooMany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.target, tt.buttons, tt.counters)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}
