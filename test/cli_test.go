package test

import (
	"path/filepath"
	"testing"
)

func TestPanelsCLI(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"text", []string{"../testdata/example.txt"}, "example.text"},
		{"markdown", []string{"../testdata/example.md"}, "example.text"},
		{"html", []string{"../testdata/example.html"}, "example.text"},
		{"yaml", []string{"../testdata/example.yaml"}, "example.text"},
		{"toggle", []string{"-m", "toggle", "../testdata/example.txt"}, "example-toggle.text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RunPanelsAndCompare(t, tt.args, filepath.Join("expected", tt.expected))
		})
	}
}
