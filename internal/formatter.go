package internal

import (
	"fmt"
	"io"

	"github.com/henrytill/panels-go/internal/formatter"
)

type Formatter interface {
	Format(w io.Writer, doc *formatter.Document) error
}

type FormatterRegistry struct {
	formatters map[Format]Formatter
}

func NewFormatterRegistry() *FormatterRegistry {
	return &FormatterRegistry{
		formatters: make(map[Format]Formatter),
	}
}

// NewDefaultFormatterRegistry returns a registry with a formatter for every output format.
func NewDefaultFormatterRegistry() *FormatterRegistry {
	r := NewFormatterRegistry()
	r.formatters[Text] = formatter.NewTextFormatter()
	r.formatters[HTML] = formatter.NewHTMLFormatter()
	r.formatters[YAML] = formatter.NewYAMLFormatter()
	return r
}

func (r *FormatterRegistry) Register(format Format, f Formatter) error {
	if !format.CanOutput() {
		return fmt.Errorf("format %s cannot be used for output", format.Name)
	}
	r.formatters[format] = f
	return nil
}

func (r *FormatterRegistry) GetFormatter(format Format) (Formatter, error) {
	if !format.CanOutput() {
		return nil, fmt.Errorf("format %s cannot be used for output", format.Name)
	}
	f, exists := r.formatters[format]
	if !exists {
		return nil, fmt.Errorf("no formatter available for format: %s", format.Name)
	}
	return f, nil
}
