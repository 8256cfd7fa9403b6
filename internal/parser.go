package internal

import (
	"fmt"
	"io"

	"github.com/henrytill/panels-go/internal/panel"
	"github.com/henrytill/panels-go/internal/parser"
)

type Parser interface {
	Parse(r io.Reader) ([]*panel.Panel, error)
}

type ParserRegistry struct {
	parsers map[Format]Parser
}

func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{
		parsers: make(map[Format]Parser),
	}
}

// NewDefaultParserRegistry returns a registry with a parser for every input format.
func NewDefaultParserRegistry() *ParserRegistry {
	r := NewParserRegistry()
	r.parsers[Text] = parser.NewTextParser()
	r.parsers[Markdown] = parser.NewMarkdownParser()
	r.parsers[HTML] = parser.NewHTMLParser()
	r.parsers[YAML] = parser.NewYAMLParser()
	return r
}

func (r *ParserRegistry) Register(format Format, p Parser) error {
	if !format.CanInput() {
		return fmt.Errorf("format %s cannot be used for input", format.Name)
	}
	r.parsers[format] = p
	return nil
}

func (r *ParserRegistry) GetParser(format Format) (Parser, error) {
	if !format.CanInput() {
		return nil, fmt.Errorf("format %s cannot be used for input", format.Name)
	}
	p, exists := r.parsers[format]
	if !exists {
		return nil, fmt.Errorf("no parser available for format: %s", format.Name)
	}
	return p, nil
}
