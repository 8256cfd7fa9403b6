package formatter

import (
	"github.com/henrytill/panels-go/internal/panel"
	"github.com/henrytill/panels-go/internal/solver"
)

// Document is everything a formatter renders: the panels of one input and
// one report per solved mode.
type Document struct {
	Source  string
	Panels  []*panel.Panel
	Reports []solver.Report
}
