package render

import (
	"html"
	"strings"
)

// RewriteMermaidBlocks replaces ```mermaid fenced blocks with raw mermaid
// container divs before markdown conversion. Rewriting at the markdown level
// keeps the syntax highlighter away from diagram source; the client-side
// mermaid bundle picks up the containers by class.
func RewriteMermaidBlocks(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	var diagram []string
	inMermaid := false
	inFence := false

	flush := func() {
		// The container must stay on a single line: goldmark ends a raw
		// HTML block at the first blank line, and a diagram may contain
		// blank lines. Newlines travel as character references and come
		// back as text when the browser parses the div.
		escaped := html.EscapeString(strings.Join(diagram, "\n"))
		out = append(out, `<div class="mermaid">`+strings.ReplaceAll(escaped, "\n", "&#10;")+`</div>`)
		diagram = nil
		inMermaid = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case inMermaid:
			if strings.HasPrefix(trimmed, "```") {
				flush()
			} else {
				diagram = append(diagram, line)
			}
		case inFence:
			out = append(out, line)
			if strings.HasPrefix(trimmed, "```") {
				inFence = false
			}
		case strings.HasPrefix(trimmed, "```mermaid"):
			inMermaid = true
		case strings.HasPrefix(trimmed, "```"):
			inFence = true
			out = append(out, line)
		default:
			out = append(out, line)
		}
	}
	// Unterminated diagram fence: emit what accumulated rather than dropping it.
	if inMermaid {
		flush()
	}
	return strings.Join(out, "\n")
}
