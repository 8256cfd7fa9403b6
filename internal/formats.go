package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

type FormatCapability uint8

const (
	CapInput FormatCapability = 1 << iota
	CapOutput
	CapBoth = CapInput | CapOutput
)

type Format struct {
	Name       string
	Capability FormatCapability
}

func (f Format) CanInput() bool  { return f.Capability&CapInput != 0 }
func (f Format) CanOutput() bool { return f.Capability&CapOutput != 0 }
func (f Format) String() string  { return f.Name }

var (
	Text     = Format{"text", CapBoth}
	Markdown = Format{"markdown", CapInput}
	HTML     = Format{"html", CapBoth}
	YAML     = Format{"yaml", CapBoth}
)

var allFormats = []Format{Text, Markdown, HTML, YAML}

func AllInputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanInput() {
			result = append(result, format)
		}
	}
	return result
}

func AllOutputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanOutput() {
			result = append(result, format)
		}
	}
	return result
}

func ParseFormat(name string) (Format, bool) {
	normalized := strings.ToLower(name)
	switch normalized {
	case "txt":
		normalized = Text.Name
	case "md":
		normalized = Markdown.Name
	case "yml":
		normalized = YAML.Name
	}
	for _, format := range allFormats {
		if format.Name == normalized {
			return format, true
		}
	}
	return Format{}, false
}

func ParseInputFormat(name string) (Format, error) {
	format, ok := ParseFormat(name)
	if !ok {
		return Format{}, fmt.Errorf("invalid format: %s", name)
	}
	if !format.CanInput() {
		return Format{}, fmt.Errorf("format %s cannot be used for input", name)
	}
	return format, nil
}

func ParseOutputFormat(name string) (Format, error) {
	format, ok := ParseFormat(name)
	if !ok {
		return Format{}, fmt.Errorf("invalid format: %s", name)
	}
	if !format.CanOutput() {
		return Format{}, fmt.Errorf("format %s cannot be used for output", name)
	}
	return format, nil
}

func DetectInputFormat(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".input", "":
		return Text, true
	case ".md":
		return Markdown, true
	case ".html", ".htm":
		return HTML, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return Format{}, false
	}
}
