package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/henrytill/panels-go/internal/panel"
)

// Result is the outcome for one panel.
type Result struct {
	Index    int
	Presses  int
	Solvable bool
	Elapsed  time.Duration

	err error
}

// Report aggregates the results of one mode across every panel of an input.
// Total only counts solvable panels.
type Report struct {
	Mode    Mode
	Total   int
	Results []Result
}

// Unsolvable returns the zero-based indices of panels that had no solution.
func (r *Report) Unsolvable() []int {
	var out []int
	for _, res := range r.Results {
		if !res.Solvable {
			out = append(out, res.Index)
		}
	}
	return out
}

type Options struct {
	// Workers bounds the number of panels solved at once. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// OnResult, if set, is called once per finished panel from the
	// goroutine running Sum.
	OnResult func(Result)
}

// Sum solves every panel in mode and adds up the press counts.
//
// Panels are validated before any search starts. Unsolvable panels are left
// out of the total and reported through an error wrapping ErrInconsistent;
// the returned Report is populated in that case.
//
// A search cannot be interrupted once started. When ctx is done Sum stops
// scheduling panels and returns ctx.Err() at once with the results gathered
// so far; searches still running finish in the background and are discarded.
func Sum(ctx context.Context, panels []*panel.Panel, mode Mode, opts Options) (Report, error) {
	report := Report{Mode: mode, Results: make([]Result, len(panels))}
	for i := range report.Results {
		report.Results[i].Index = i
	}

	for i, p := range panels {
		if mode == Depletion && !p.HasJoltage() {
			return report, fmt.Errorf("panel %d: %w: no joltage requirements", i+1, panel.ErrMalformed)
		}
	}
	if mode != Toggle && mode != Depletion {
		return report, fmt.Errorf("invalid mode: %v", mode)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make(chan Result, len(panels))
	go func() {
		sem := make(chan struct{}, workers)
		for i, p := range panels {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			go func() {
				defer func() { <-sem }()
				start := time.Now()
				n, err := Solve(p, mode)
				res := Result{Index: i, Presses: n, Solvable: err == nil, Elapsed: time.Since(start)}
				if err != nil && !errors.Is(err, ErrUnsolvable) {
					res.err = fmt.Errorf("panel %d: %w", i+1, err)
				}
				out <- res
			}()
		}
	}()

	var firstErr error
	for range panels {
		select {
		case res := <-out:
			report.Results[res.Index] = res
			if res.err != nil && firstErr == nil {
				firstErr = res.err
			}
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
		case <-ctx.Done():
			return report, ctx.Err()
		}
	}
	if firstErr != nil {
		return report, firstErr
	}

	var unsolvable []int
	for _, res := range report.Results {
		if res.Solvable {
			report.Total += res.Presses
		} else {
			unsolvable = append(unsolvable, res.Index+1)
		}
	}
	if len(unsolvable) > 0 {
		return report, fmt.Errorf("%w: %s panels %v", ErrInconsistent, mode, unsolvable)
	}
	return report, nil
}
