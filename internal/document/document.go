// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document splits HTML, Markdown and plain-text documents into
// content segments and annotates each segment with the numbers it holds.
package document

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/numdict/pkg/types"
)

// Format is a document input format.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatText, FormatHTML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, text, html or markdown)", s)
	}
}

// DetectFormat picks a format from a file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Resolve returns f, or the format detected from name when f is auto.
func Resolve(f Format, name string) Format {
	if f == FormatAuto || f == "" {
		return DetectFormat(name)
	}
	return f
}

// Segments splits src according to format. FormatAuto is treated as text.
func Segments(format Format, src []byte) ([]types.Segment, error) {
	switch format {
	case FormatHTML:
		return HTMLSegments(bytes.NewReader(src))
	case FormatMarkdown:
		return MarkdownSegments(src), nil
	case FormatText, FormatAuto, "":
		return TextSegments(src), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// TextSegments returns one segment per non-blank line.
func TextSegments(src []byte) []types.Segment {
	var segs []types.Segment
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		segs = append(segs, types.Segment{
			Index: len(segs),
			Path:  fmt.Sprintf("line/%d", line),
			Text:  text,
		})
	}
	return segs
}
