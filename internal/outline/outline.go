// Package outline extracts a heading outline from decoded markdown.
package outline

import (
	"bufio"
	"regexp"
	"strings"
)

// Heading is one entry in a document's navigation outline. Entries form a
// flat ordered list; nesting is expressed only through Level.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	ID    string `json:"id"`
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChar   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives an anchor-safe identifier from heading text: lowercase,
// whitespace runs collapsed to a single hyphen, everything outside
// [a-z0-9-] stripped. Slugify(Slugify(x)) == Slugify(x), so outline entries
// and rendered heading IDs can never drift apart.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChar.ReplaceAllString(s, "")
}

// Extract scans decoded text for ATX headings outside fenced code blocks and
// returns them in document order.
//
// Fences are handled with toggle logic: any line whose trimmed content starts
// with ``` flips the in-fence state, since opening and closing fences are
// indistinguishable. An unterminated fence therefore suppresses heading
// detection through the end of the document, which is the fail-safe we want
// for half-written files.
func Extract(text string) []Heading {
	var headings []Heading
	inFence := false

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		trimmed := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if h, ok := parseATX(trimmed); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// parseATX matches one to six # characters, required whitespace, then the
// title. A line like "#Title" with no separating whitespace is not a heading.
func parseATX(line string) (Heading, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > 6 || level == len(line) {
		return Heading{}, false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return Heading{}, false
	}
	title := strings.TrimSpace(line[level:])
	if title == "" {
		return Heading{}, false
	}
	return Heading{Level: level, Title: title, ID: Slugify(title)}, true
}
