// Package search implements incremental in-document search over a rendered
// HTML fragment: case-insensitive substring matching, match highlighting,
// cyclic next/previous navigation, and proportional position markers.
package search

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Position reports the 1-based current match and the total match count.
// A zero Position means no active match.
type Position struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Session is the transient state of one active search. It is created per
// query submission and replaced wholesale on the next one; a document reload
// invalidates it implicitly because the underlying tree is replaced.
type Session struct {
	query   string
	total   int
	index   int // 0-based current match
	html    string
	markers []float64
}

// New builds a session by walking the fragment's text nodes in document
// order and wrapping every occurrence of query in a highlight marker. The
// first match is current. An empty query produces an inactive session whose
// HTML is the fragment untouched.
func New(fragment, query string) (*Session, error) {
	if query == "" {
		return &Session{html: fragment}, nil
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}

	loweredQuery := foldString(query)

	var textNodes []*html.Node
	for _, n := range nodes {
		collectTextNodes(n, &textNodes)
	}

	// First pass: locate matches and the total visible text length, so
	// marker fractions can be computed against the whole document.
	type nodeMatch struct {
		node       *html.Node
		start, end int // byte offsets in the node's original text
	}
	var matches []nodeMatch
	var offsets []int // absolute text offset of each match start
	textLen := 0
	for _, n := range textNodes {
		folded, table := foldText(n.Data)
		from := 0
		for {
			i := strings.Index(folded[from:], loweredQuery)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(loweredQuery)
			matches = append(matches, nodeMatch{node: n, start: table[start], end: table[end]})
			offsets = append(offsets, textLen+table[start])
			from = end // left-to-right, non-overlapping
		}
		textLen += len(n.Data)
	}

	s := &Session{query: query, total: len(matches)}
	if textLen > 0 {
		s.markers = make([]float64, len(matches))
		for i, off := range offsets {
			s.markers[i] = float64(off) / float64(textLen)
		}
	}

	// Second pass: wrap matches in reverse encounter order. Wrapping
	// truncates the text node it hits, so within a node the later offsets
	// must be consumed first to keep the earlier ones valid.
	for i := len(matches) - 1; i >= 0; i-- {
		wrapMatch(matches[i].node, matches[i].start, matches[i].end, i, i == 0)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	s.html = buf.String()
	return s, nil
}

// Count returns the number of matches.
func (s *Session) Count() int { return s.total }

// Active reports whether the session has a non-empty query.
func (s *Session) Active() bool { return s.query != "" }

// HTML returns the fragment with all matches wrapped in highlight markers.
func (s *Session) HTML() string { return s.html }

// Markers returns one fraction per match: the match's offset into the
// document's visible text divided by the total text length. Clients place
// position markers proportionally against the scroll height.
func (s *Session) Markers() []float64 { return s.markers }

// Position returns the current cursor without moving it.
func (s *Session) Position() Position {
	if s.total == 0 {
		return Position{}
	}
	return Position{Current: s.index + 1, Total: s.total}
}

// Next advances the cursor cyclically and returns the new position.
func (s *Session) Next() Position {
	if s.total == 0 {
		return Position{}
	}
	s.index = (s.index + 1) % s.total
	return s.Position()
}

// Previous moves the cursor back cyclically and returns the new position.
func (s *Session) Previous() Position {
	if s.total == 0 {
		return Position{}
	}
	s.index = (s.index - 1 + s.total) % s.total
	return s.Position()
}

// collectTextNodes gathers text nodes in document order, skipping script and
// style subtrees.
func collectTextNodes(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		}
	}
	if n.Type == html.TextNode {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextNodes(c, out)
	}
}

// wrapMatch splits the text node around [start,end) and wraps the matched
// run in <mark class="search-hit" data-match="idx">.
func wrapMatch(n *html.Node, start, end, idx int, current bool) {
	parent := n.Parent
	if parent == nil {
		return
	}
	matched := n.Data[start:end]
	after := n.Data[end:]
	n.Data = n.Data[:start]

	class := "search-hit"
	if current {
		class = "search-hit current"
	}
	mark := &html.Node{
		Type:     html.ElementNode,
		Data:     "mark",
		DataAtom: atom.Mark,
		Attr: []html.Attribute{
			{Key: "class", Val: class},
			{Key: "data-match", Val: strconv.Itoa(idx)},
		},
	}
	mark.AppendChild(&html.Node{Type: html.TextNode, Data: matched})

	parent.InsertBefore(mark, n.NextSibling)
	if after != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: after}, mark.NextSibling)
	}
}

// foldString lowercases a string rune-by-rune for matching.
func foldString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// foldText lowercases text for matching and returns a table mapping every
// byte offset of the folded text (plus one past the end) back to a byte
// offset in the original, so case folds that change byte length cannot skew
// the wrap positions.
func foldText(s string) (string, []int) {
	var b strings.Builder
	table := make([]int, 0, len(s)+1)
	for i, r := range s {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			table = append(table, i)
		}
		b.WriteRune(lr)
	}
	table = append(table, len(s))
	return b.String(), table
}
