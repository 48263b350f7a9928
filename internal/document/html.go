// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/numdict/pkg/types"
)

// ignoredElements hold no readable page content.
var ignoredElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Head:     true,
	atom.Meta:     true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// HTMLSegments parses an HTML document and returns one segment per
// non-blank text node, depth first. Entities are decoded. Path is the
// element path from the root ("html/body/p/b").
func HTMLSegments(r io.Reader) ([]types.Segment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var segs []types.Segment
	var path []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if ignoredElements[n.DataAtom] {
				return
			}
			path = append(path, n.Data)
			defer func() { path = path[:len(path)-1] }()
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				segs = append(segs, types.Segment{
					Index: len(segs),
					Path:  strings.Join(path, "/"),
					Text:  n.Data,
				})
			}
			return
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return segs, nil
}
