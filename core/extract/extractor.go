// Package extract implements the Extractor interface.
// Repository full text arrives as an HTML document or fragment; before it
// is shown in a dialog or exported it is reduced to the text-bearing markup:
//  1. Removing active and interactive elements (scripts, forms, frames)
//  2. Returning the inner HTML of the best container (<main>, <article>, <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before the text is used.
var noiseSelectors = []string{
	"script", "style", "noscript", "link", "meta",
	"iframe", "object", "embed",
	"form", "button", "input", "select", "textarea",
	"nav", "header", "footer",
}

// eventAttrs are attributes stripped from every remaining element.
var eventAttrs = []string{"onclick", "onload", "onerror", "onmouseover", "onfocus", "style"}

// HTMLExtractor cleans repository HTML into a safe fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes full-text HTML and returns the cleaned inner fragment.
// Plain text input is returned escaped.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, a := range eventAttrs {
			s.RemoveAttr(a)
		}
		if href, ok := s.Attr("href"); ok && strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:") {
			s.RemoveAttr("href")
		}
	})

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}
