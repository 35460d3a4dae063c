// Package htmldoc provides the structural HTML access used by the source
// scrapers: tag search, text extraction, and sibling traversal over
// golang.org/x/net/html parse trees.
package htmldoc

import (
	"bytes"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Parse parses an HTML document body into a node tree.
func Parse(body []byte) (*html.Node, error) {
	n, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "htmldoc: parse")
	}
	return n, nil
}

// FindAll returns every element matching one of the given tag names, in
// document order. Tag names must be lowercase; the parser lowercases element
// names for standard HTML tags.
func FindAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, tag := range tags {
				if node.Data == tag {
					out = append(out, node)
					break
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

// Text returns the node's text content with whitespace collapsed to single
// spaces and Unicode normalized to NFC. Government listing pages mix ASCII
// and Kannada text in inconsistent normalization forms.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return norm.NFC.String(strings.Join(strings.Fields(sb.String()), " "))
}

// NextSiblingElement returns the next sibling that is an element node,
// skipping interleaved text and comment nodes. Returns nil when none remain.
func NextSiblingElement(n *html.Node) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode {
			return sib
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
