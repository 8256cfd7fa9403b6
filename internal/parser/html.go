package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/henrytill/panels-go/internal/panel"
	"golang.org/x/net/html"
)

// HTMLParser extracts the worked example from a puzzle description page.
// It scans every <pre><code> block in document order and returns the panels
// of the first block that parses in the text format.
type HTMLParser struct{}

func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

func getTextContent(node *html.Node) string {
	var result strings.Builder
	worklist := []*html.Node{node}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current.Type == html.TextNode {
			result.WriteString(current.Data)
			continue
		}

		for c := current.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}

	return result.String()
}

func codeBlocks(root *html.Node) []string {
	var (
		blocks   []string
		worklist = []*html.Node{root}
	)

	for len(worklist) > 0 {
		node := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if node.Type == html.ElementNode && strings.EqualFold(node.Data, "pre") {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && strings.EqualFold(c.Data, "code") {
					blocks = append(blocks, getTextContent(c))
				}
			}
			continue
		}

		for c := node.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}

	return blocks
}

func (p *HTMLParser) Parse(reader io.Reader) ([]*panel.Panel, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var errs []error
	for i, block := range codeBlocks(doc) {
		panels, err := NewTextParser().Parse(strings.NewReader(block))
		if errors.Is(err, ErrNoPanels) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("code block %d: %w", i+1, err))
			continue
		}
		return panels, nil
	}

	return nil, errors.Join(append([]error{ErrNoPanels}, errs...)...)
}
