package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/henrytill/panels-go/internal/panel"
	"github.com/henrytill/panels-go/internal/parser"
	"github.com/henrytill/panels-go/internal/solver"
	"golang.org/x/text/language"
)

func testDocument(t *testing.T) *Document {
	t.Helper()
	p1, err := parser.ParseLine("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := parser.ParseLine("[##] (0)")
	if err != nil {
		t.Fatal(err)
	}
	return &Document{
		Source: "example.txt",
		Panels: []*panel.Panel{p1, p2},
		Reports: []solver.Report{{
			Mode:  solver.Toggle,
			Total: 12345,
			Results: []solver.Result{
				{Index: 0, Presses: 12345, Solvable: true},
				{Index: 1, Solvable: false},
			},
		}},
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().Format(&buf, testDocument(t)); err != nil {
		t.Fatal(err)
	}
	want := "toggle: 12,345\ntoggle unsolvable: [2]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTextFormatterLanguage(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().WithLanguage(language.German).Format(&buf, testDocument(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "toggle: 12.345\n") {
		t.Errorf("got %q", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter().Format(&buf, testDocument(t)); err != nil {
		t.Fatal(err)
	}

	var got yamlDocument
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.Version != parser.SchemaVersion {
		t.Errorf("version = %q", got.Version)
	}
	if len(got.Reports) != 1 || got.Reports[0].Mode != "toggle" || got.Reports[0].Total != 12345 {
		t.Fatalf("unexpected reports: %+v", got.Reports)
	}
	results := got.Reports[0].Results
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Presses == nil || *results[0].Presses != 12345 {
		t.Errorf("panel 1 presses = %v", results[0].Presses)
	}
	if results[1].Presses != nil || results[1].Solvable {
		t.Errorf("panel 2 should be unsolvable without presses: %+v", results[1])
	}
	if results[1].Machine != "[##] (0)" {
		t.Errorf("panel 2 machine = %q", results[1].Machine)
	}
}

func TestHTMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLFormatter().Format(&buf, testDocument(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Panels - example.txt</title>",
		"<h2>toggle: 12345</h2>",
		"<td><code>[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}</code></td><td>12345</td>",
		"<td>2</td><td><code>[##] (0)</code></td><td>unsolvable</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
