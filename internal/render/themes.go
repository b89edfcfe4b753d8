package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme selects the visual treatment of the rendered document. It is a
// closed set: rendering maps each variant to a fixed style block, nothing
// else about the pipeline changes.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSepia  Theme = "sepia"
)

// Themes lists all valid themes in display order.
func Themes() []Theme {
	return []Theme{ThemeSystem, ThemeLight, ThemeDark, ThemeSepia}
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q: must be one of system, light, dark, sepia", s)
}

const (
	lightSyntaxStyle = "github"
	darkSyntaxStyle  = "monokai"
)

// darkVars is the page palette for dark rendering, both forced and
// media-query driven.
const darkVars = `
  --bg: #1a1b26;
  --bg-sidebar: #16171f;
  --bg-toolbar: #1f2030;
  --text: #c0caf5;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --code-bg: #1f2030;
  --link: #7aa2f7;
  --table-stripe: #1f2030;
  --mark-bg: #4d4a1f;
  --mark-current: #d9480f;
`

// sepiaVars is a warm parchment palette with overridden link and heading
// colors.
const sepiaVars = `
  --bg: #f4ecd8;
  --bg-sidebar: #ece1c8;
  --bg-toolbar: #efe6d0;
  --text: #5b4636;
  --text-muted: #8a7560;
  --border: #d8c9a8;
  --accent: #8b4513;
  --code-bg: #ece1c8;
  --link: #8b4513;
  --table-stripe: #efe6d0;
  --mark-bg: #e9d8a6;
  --mark-current: #e8590c;
`

// forcedOverrides pins the page to the theme palette regardless of the
// specificity of the embedded syntax stylesheet.
const forcedOverrides = `
body { background: var(--bg) !important; color: var(--text) !important; }
#content a { color: var(--link) !important; }
#content h1, #content h2 { border-color: var(--border) !important; color: var(--text) !important; }
#content th, #content td { border-color: var(--border) !important; }
#content tr:nth-child(even) { background: var(--table-stripe) !important; }
#content pre, #content code, .chroma { background: var(--code-bg) !important; }
`

// StyleBlocks returns the theme-specific <style> elements for t. System
// defers to the OS light/dark signal with two conditional blocks, each
// carrying the matching syntax-highlight stylesheet; the forced themes pin
// color-scheme and override the syntax stylesheet's defaults.
func StyleBlocks(t Theme) string {
	switch t {
	case ThemeLight:
		return "<style>\n:root { color-scheme: light; }\n" +
			syntaxCSS(lightSyntaxStyle) + forcedOverrides + "</style>"
	case ThemeDark:
		return "<style>\n:root { color-scheme: dark;" + darkVars + "}\n" +
			syntaxCSS(darkSyntaxStyle) + forcedOverrides + "</style>"
	case ThemeSepia:
		return "<style>\n:root { color-scheme: light;" + sepiaVars + "}\n" +
			syntaxCSS(lightSyntaxStyle) + forcedOverrides + "</style>"
	default: // ThemeSystem
		return `<style media="(prefers-color-scheme: light)">` + "\n" +
			syntaxCSS(lightSyntaxStyle) + "</style>\n" +
			`<style media="(prefers-color-scheme: dark)">` + "\n" +
			":root {" + darkVars + "}\n" +
			syntaxCSS(darkSyntaxStyle) + "</style>"
	}
}

var (
	syntaxCSSMu    sync.Mutex
	syntaxCSSCache = map[string]string{}
)

// syntaxCSS produces the class-based chroma stylesheet for a named style.
// Computed once per style per process.
func syntaxCSS(name string) string {
	syntaxCSSMu.Lock()
	defer syntaxCSSMu.Unlock()
	if css, ok := syntaxCSSCache[name]; ok {
		return css
	}

	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return ""
	}
	css := buf.String()
	syntaxCSSCache[name] = css
	return css
}
