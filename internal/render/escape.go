package render

import "strings"

var scriptLiteralEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"$", `\$`,
)

// EscapeScriptLiteral makes text safe for embedding inside a JavaScript
// template literal: backslash, backtick and dollar are escaped, and all
// line-ending variants are normalized to a single newline form.
func EscapeScriptLiteral(s string) string {
	s = scriptLiteralEscaper.Replace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
