// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// asidePattern matches parenthetical asides, which carry the service's
// own reference values rather than the comparison itself.
var asidePattern = regexp.MustCompile(`\(.*?\)`)

type queryResult struct {
	XMLName xml.Name `xml:"queryresult"`
	Success bool     `xml:"success,attr"`
	Error   bool     `xml:"error,attr"`
	Pods    []pod    `xml:"pod"`
}

type pod struct {
	ID      string   `xml:"id,attr"`
	Title   string   `xml:"title,attr"`
	Subpods []subpod `xml:"subpod"`
}

type subpod struct {
	Plaintext string `xml:"plaintext"`
}

// ParseResult reads a query result envelope and returns the cleaned text
// of the first plaintext in the pod with id podID, or in the first pod
// when none matches.
func ParseResult(r io.Reader, podID string) (string, error) {
	var qr queryResult
	if err := xml.NewDecoder(r).Decode(&qr); err != nil {
		return "", fmt.Errorf("parsing comparison response: %w", err)
	}
	if !qr.Success || qr.Error || len(qr.Pods) == 0 {
		return "", ErrNoComparison
	}

	chosen := qr.Pods[0]
	for _, p := range qr.Pods {
		if p.ID == podID {
			chosen = p
			break
		}
	}
	for _, sp := range chosen.Subpods {
		if text := Clean(sp.Plaintext); text != "" {
			return text, nil
		}
	}
	return "", ErrNoComparison
}

// Clean removes parenthetical asides and surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(asidePattern.ReplaceAllString(s, ""))
}
