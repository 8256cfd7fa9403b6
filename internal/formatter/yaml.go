package formatter

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/henrytill/panels-go/internal/parser"
)

type yamlResult struct {
	Panel    int    `yaml:"panel"`
	Machine  string `yaml:"machine"`
	Presses  *int   `yaml:"presses"`
	Solvable bool   `yaml:"solvable"`
}

type yamlReport struct {
	Mode    string       `yaml:"mode"`
	Total   int          `yaml:"total"`
	Results []yamlResult `yaml:"results"`
}

type yamlDocument struct {
	Version string       `yaml:"version"`
	Source  string       `yaml:"source,omitempty"`
	Reports []yamlReport `yaml:"reports"`
}

type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func newYAMLDocument(doc *Document) yamlDocument {
	out := yamlDocument{
		Version: parser.SchemaVersion,
		Source:  doc.Source,
		Reports: make([]yamlReport, 0, len(doc.Reports)),
	}
	for _, report := range doc.Reports {
		yr := yamlReport{
			Mode:    report.Mode.String(),
			Total:   report.Total,
			Results: make([]yamlResult, 0, len(report.Results)),
		}
		for _, res := range report.Results {
			r := yamlResult{Panel: res.Index + 1, Solvable: res.Solvable}
			if res.Index < len(doc.Panels) {
				r.Machine = doc.Panels[res.Index].String()
			}
			if res.Solvable {
				n := res.Presses
				r.Presses = &n
			}
			yr.Results = append(yr.Results, r)
		}
		out.Reports = append(out.Reports, yr)
	}
	return out
}

func (f *YAMLFormatter) Format(w io.Writer, doc *Document) error {
	encoder := yaml.NewEncoder(w,
		yaml.UseSingleQuote(true),
		yaml.Indent(2),
	)
	defer encoder.Close()

	return encoder.Encode(newYAMLDocument(doc))
}
