package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/henrytill/panels-go/internal/panel"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads panels from the fenced code blocks of a Markdown
// document. Only blocks with no info string, or with "text" or "panels", are
// considered; each block holds panels in the text format.
type MarkdownParser struct{}

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func isPanelBlock(info string) bool {
	switch strings.ToLower(strings.TrimSpace(info)) {
	case "", "text", "panels":
		return true
	default:
		return false
	}
}

func blockContent(block *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

func (p *MarkdownParser) Parse(r io.Reader) ([]*panel.Panel, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	var panels []*panel.Panel
	blockNo := 0
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		blockNo++

		var info string
		if block.Info != nil {
			info = string(block.Language(content))
		}
		if !isPanelBlock(info) {
			return ast.WalkSkipChildren, nil
		}

		parsed, err := NewTextParser().Parse(bytes.NewReader(blockContent(block, content)))
		if errors.Is(err, ErrNoPanels) {
			return ast.WalkSkipChildren, nil
		}
		if err != nil {
			return ast.WalkStop, fmt.Errorf("code block %d: %w", blockNo, err)
		}
		panels = append(panels, parsed...)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	return panels, nil
}
