package formatter

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type TextFormatter struct {
	lang language.Tag
}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{lang: language.English}
}

// WithLanguage sets the locale used to group digits in totals.
func (f *TextFormatter) WithLanguage(tag language.Tag) *TextFormatter {
	f.lang = tag
	return f
}

func (f *TextFormatter) Format(w io.Writer, doc *Document) error {
	p := message.NewPrinter(f.lang)
	for _, report := range doc.Reports {
		if _, err := p.Fprintf(w, "%s: %d\n", report.Mode, report.Total); err != nil {
			return err
		}
		if unsolvable := report.Unsolvable(); len(unsolvable) > 0 {
			for i := range unsolvable {
				unsolvable[i]++
			}
			if _, err := fmt.Fprintf(w, "%s unsolvable: %v\n", report.Mode, unsolvable); err != nil {
				return err
			}
		}
	}
	return nil
}
