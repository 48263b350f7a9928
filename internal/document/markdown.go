// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/numdict/pkg/types"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownSegments parses GitHub-flavored Markdown and returns one segment
// per text block (paragraph, heading, tight list item, table cell). Code
// blocks, code spans and raw HTML are skipped. Path is the chain of node
// kinds from the document root ("document/list/listitem/textblock").
func MarkdownSegments(src []byte) []types.Segment {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var segs []types.Segment
	gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.(type) {
		case *gmast.FencedCodeBlock, *gmast.CodeBlock, *gmast.HTMLBlock:
			return gmast.WalkSkipChildren, nil
		case *gmast.Paragraph, *gmast.Heading, *gmast.TextBlock, *extast.TableCell:
			var b strings.Builder
			inlineText(n, src, &b)
			if t := strings.TrimSpace(b.String()); t != "" {
				segs = append(segs, types.Segment{
					Index: len(segs),
					Path:  kindPath(n),
					Text:  t,
				})
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return segs
}

func inlineText(n gmast.Node, src []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *gmast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
			if c.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *gmast.String:
			b.Write(c.Value)
		case *gmast.CodeSpan, *gmast.RawHTML, *gmast.AutoLink:
		default:
			inlineText(c, src, b)
		}
	}
}

func kindPath(n gmast.Node) string {
	var kinds []string
	for ; n != nil; n = n.Parent() {
		kinds = append(kinds, strings.ToLower(n.Kind().String()))
	}
	for i, j := 0, len(kinds)-1; i < j; i, j = i+1, j-1 {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}
	return strings.Join(kinds, "/")
}
