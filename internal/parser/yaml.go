package parser

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/henrytill/panels-go/internal/lights"
	"github.com/henrytill/panels-go/internal/panel"
	"golang.org/x/mod/semver"
)

// SchemaVersion is the version written into YAML documents and reports.
// Readers accept any version with the same major.
const SchemaVersion = "v1.0.0"

type yamlPanel struct {
	Lights  string  `yaml:"lights"`
	Buttons [][]int `yaml:"buttons"`
	Joltage []int   `yaml:"joltage,omitempty"`
}

type yamlDocument struct {
	Version string      `yaml:"version"`
	Panels  []yamlPanel `yaml:"panels"`
}

// YAMLParser reads a document such as:
//
//	version: v1.0.0
//	panels:
//	  - lights: "[.##.]"
//	    buttons: [[3], [1, 3]]
//	    joltage: [3, 5, 4, 7]
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// CheckVersion reports whether v is a valid semantic version compatible
// with SchemaVersion.
func CheckVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrSyntax, v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("%w: unsupported version %s (want %s.x.y)", ErrSyntax, v, semver.Major(SchemaVersion))
	}
	return nil
}

func (p *YAMLParser) Parse(r io.Reader) ([]*panel.Panel, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := CheckVersion(doc.Version); err != nil {
		return nil, err
	}

	panels := make([]*panel.Panel, 0, len(doc.Panels))
	for i, yp := range doc.Panels {
		target, width, err := lights.Parse(yp.Lights)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w: %q: %w", i+1, ErrSyntax, yp.Lights, err)
		}

		buttons := make([]panel.Button, 0, len(yp.Buttons))
		for _, indices := range yp.Buttons {
			b, err := panel.NewButton(indices...)
			if err != nil {
				return nil, fmt.Errorf("panel %d: %w", i+1, err)
			}
			buttons = append(buttons, b)
		}

		pnl, err := panel.New(width, target, buttons, yp.Joltage)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i+1, err)
		}
		panels = append(panels, pnl)
	}

	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	return panels, nil
}
