package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/henrytill/panels-go/internal/lights"
	"github.com/henrytill/panels-go/internal/panel"
)

var (
	ErrSyntax   = errors.New("syntax error")
	ErrNoPanels = errors.New("no panels found")
)

// TextParser reads one panel per line:
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
// The joltage list is optional. Blank lines are skipped; input with no
// panel lines at all fails with ErrNoPanels.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Parse(r io.Reader) ([]*panel.Panel, error) {
	var panels []*panel.Panel

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pnl, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		panels = append(panels, pnl)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	return panels, nil
}

// ParseLine parses a single panel description.
func ParseLine(line string) (*panel.Panel, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrSyntax)
	}

	target, width, err := lights.Parse(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, fields[0], err)
	}

	var counters []int
	rest := fields[1:]
	if n := len(rest); n > 0 && strings.HasPrefix(rest[n-1], "{") {
		counters, err = parseList(rest[n-1], '{', '}')
		if err != nil {
			return nil, err
		}
		if counters == nil {
			counters = []int{}
		}
		rest = rest[:n-1]
	}

	buttons := make([]panel.Button, 0, len(rest))
	for _, field := range rest {
		indices, err := parseList(field, '(', ')')
		if err != nil {
			return nil, err
		}
		b, err := panel.NewButton(indices...)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}

	return panel.New(width, target, buttons, counters)
}

func parseList(field string, open, end byte) ([]int, error) {
	if len(field) < 2 || field[0] != open || field[len(field)-1] != end {
		return nil, fmt.Errorf("%w: expected %c...%c, got %q", ErrSyntax, open, end, field)
	}
	inner := field[1 : len(field)-1]
	if inner == "" {
		return nil, nil
	}

	var out []int
	for part := range strings.SplitSeq(inner, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, field, err)
		}
		out = append(out, n)
	}
	return out, nil
}
