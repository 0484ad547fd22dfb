package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/lingopack"
	"golang.org/x/net/html"
)

// HTMLProcessor extracts and applies translations to HTML content.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates a new HTML processor with default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: lingopack.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates a new HTML processor with custom
// ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// parsedHTML holds the parsed document between Extract and Apply.
type parsedHTML struct {
	doc *goquery.Document
}

// Extract parses HTML and extracts translatable text nodes, deduplicated by
// content hash. Ignored tags and data-no-translate subtrees are skipped.
func (p *HTMLProcessor) Extract(content string) (interface{}, []lingopack.TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &lingopack.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var nodes []lingopack.TextNode
	seenHashes := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if p.skipElement(n) {
			return
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				hash := lingopack.HashText(trimmed)
				if !seenHashes[hash] {
					seenHashes[hash] = true

					node := lingopack.TextNode{
						ID:       fmt.Sprintf("node-%d", len(nodes)),
						Text:     trimmed,
						Hash:     hash,
						NodeType: "html_text",
						Metadata: map[string]string{},
					}
					if n.Parent != nil {
						node.Metadata["parent_tag"] = n.Parent.Data
					}
					nodes = append(nodes, node)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	return &parsedHTML{doc: doc}, nodes, nil
}

// Apply writes translations back into the document, preserving each text
// node's original surrounding whitespace.
func (p *HTMLProcessor) Apply(parsed interface{}, nodes []lingopack.TextNode, translations map[string]string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &lingopack.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if p.skipElement(n) {
			return
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if translated, ok := translations[lingopack.HashText(trimmed)]; ok {
					n.Data = preserveWhitespace(n.Data, translated)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	ph.doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	out, err := ph.doc.Html()
	if err != nil {
		return "", &lingopack.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return out, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// skipElement reports whether an element subtree must not be translated.
func (p *HTMLProcessor) skipElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if p.ignoredTags[strings.ToLower(n.Data)] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "data-no-translate" {
			return true
		}
	}
	return false
}

// preserveWhitespace keeps the original leading/trailing whitespace around
// the translated text.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
