package render

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mdpeek/mdpeek/internal/outline"
)

// AssignHeadingIDs walks the rendered fragment and gives every h1–h6 element
// an id derived from its text via outline.Slugify. Using the same function
// that builds the outline guarantees outline-entry clicks always resolve to
// a real in-document anchor.
func AssignHeadingIDs(fragment string) (string, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		walkAssignIDs(n)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walkAssignIDs(n *html.Node) {
	if n.Type == html.ElementNode && headingLevel(n.Data) > 0 {
		if !hasAttr(n, "id") {
			if id := outline.Slugify(textContent(n)); id != "" {
				n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkAssignIDs(c)
	}
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// parseFragment parses rendered markdown output in a body context.
func parseFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}
