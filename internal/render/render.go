// Package render composes decoded markdown, theme selection, and detected
// features into complete, self-contained HTML payloads.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mdpeek/mdpeek/internal/assets"
	"github.com/mdpeek/mdpeek/internal/document"
	"github.com/mdpeek/mdpeek/internal/feature"
	"github.com/mdpeek/mdpeek/internal/outline"
)

// Variant selects between the scripted live-preview payload and the
// script-free static export payload.
type Variant int

const (
	// Interactive embeds the live-reload, search, math and diagram scripts.
	Interactive Variant = iota
	// Static embeds only styles and pre-rendered markup, suitable for
	// standalone distribution.
	Static
)

// Options parameterize a render call.
type Options struct {
	Theme         Theme
	Variant       Variant
	SidebarHidden bool
}

// Payload is the immutable output of a render call.
type Payload struct {
	HTML        string // complete document
	ContentHTML string // rendered markdown fragment (anchored headings, diagram containers)
	Theme       Theme
	Variant     Variant
	Doc         *document.Document
}

// Renderer turns Documents into Payloads. Safe to reuse across renders.
type Renderer struct {
	assets *assets.Cache
	md     goldmark.Markdown
	tmpl   *template.Template
}

// New builds a Renderer on the given asset cache. The markdown pipeline is
// GFM with class-mode syntax highlighting; heading IDs are assigned in a
// post-render pass with the outline's slug algorithm, so goldmark's own auto
// IDs stay disabled.
func New(cache *assets.Cache) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &Renderer{
		assets: cache,
		md:     md,
		tmpl:   template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// ContentHTML converts the document's markdown into the rendered content
// fragment: mermaid fences become diagram containers and every heading gets
// its outline anchor.
func (r *Renderer) ContentHTML(doc *document.Document) (string, error) {
	text := doc.Text
	if doc.Features.Mermaid {
		text = RewriteMermaidBlocks(text)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	content, err := AssignHeadingIDs(buf.String())
	if err != nil {
		// Degrade to unanchored headings rather than failing the render.
		log.Printf("render: assigning heading ids: %v", err)
		return buf.String(), nil
	}
	return content, nil
}

// clientState is the initial state handed to the embedded script.
type clientState struct {
	Title         string            `json:"title"`
	Features      feature.Set       `json:"features"`
	Outline       []outline.Heading `json:"outline"`
	SidebarHidden bool              `json:"sidebarHidden"`
}

type pageData struct {
	Title       string
	Head        template.HTML
	OutlineHTML template.HTML
	Content     template.HTML
	Scripts     template.HTML
	BodyClass   string
	Interactive bool
}

// Render produces a complete payload for the document under the given
// options. The result is created fresh on every call and never mutated.
func (r *Renderer) Render(doc *document.Document, opts Options) (*Payload, error) {
	content, err := r.ContentHTML(doc)
	if err != nil {
		return nil, err
	}

	data := pageData{
		Title:       doc.Title(),
		Head:        template.HTML(r.buildHead(doc, opts)),
		OutlineHTML: template.HTML(outlineHTML(doc.Outline)),
		Content:     template.HTML(content),
		Interactive: opts.Variant == Interactive,
	}
	switch {
	case opts.Variant == Static:
		data.BodyClass = "static"
	case opts.SidebarHidden:
		data.BodyClass = "sidebar-hidden"
	}
	if opts.Variant == Interactive {
		data.Scripts = template.HTML(r.buildScripts(doc, opts))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}

	return &Payload{
		HTML:        buf.String(),
		ContentHTML: content,
		Theme:       opts.Theme,
		Variant:     opts.Variant,
		Doc:         doc,
	}, nil
}

// buildHead assembles the base stylesheet, the theme style blocks, and the
// conditional feature stylesheets. Feature assets are included only when the
// document needs them.
func (r *Renderer) buildHead(doc *document.Document, opts Options) string {
	var head strings.Builder
	head.WriteString("<style>\n" + r.assets.Get(assets.BaseStylesheet) + "\n</style>\n")
	head.WriteString(StyleBlocks(opts.Theme))
	if doc.Features.Math {
		if css := r.assets.Get(assets.KatexCSS); css != "" {
			head.WriteString("\n<style>\n" + css + "\n</style>")
		}
	}
	return head.String()
}

// buildScripts assembles the interactive variant's script tags: initial
// client state, the escaped markdown source, the conditional math/diagram
// bundles, and the preview application script.
func (r *Renderer) buildScripts(doc *document.Document, opts Options) string {
	state, _ := json.Marshal(clientState{
		Title:         doc.Title(),
		Features:      doc.Features,
		Outline:       doc.Outline,
		SidebarHidden: opts.SidebarHidden,
	})

	var b strings.Builder
	b.WriteString("<script>window.__mdpeek = " + string(state) + ";</script>\n")
	b.WriteString("<script>window.__markdownSource = `" +
		sanitizeScriptClose(EscapeScriptLiteral(doc.Text)) + "`;</script>\n")
	if doc.Features.Math {
		if js := r.assets.Get(assets.KatexJS); js != "" {
			b.WriteString("<script>" + js + "</script>\n")
		}
		if js := r.assets.Get(assets.KatexAutoJS); js != "" {
			b.WriteString("<script>" + js + "</script>\n")
		}
	}
	if doc.Features.Mermaid {
		if js := r.assets.Get(assets.MermaidJS); js != "" {
			b.WriteString("<script>" + js + "</script>\n")
		}
	}
	b.WriteString("<script>\n" + appJS + "</script>")
	return b.String()
}

var scriptCloseRe = regexp.MustCompile(`(?i)</script`)

// sanitizeScriptClose keeps a literal </script> inside the document source
// from terminating the embedding script element.
func sanitizeScriptClose(s string) string {
	return scriptCloseRe.ReplaceAllString(s, `<\/script`)
}

func outlineHTML(headings []outline.Heading) string {
	var b strings.Builder
	for _, h := range headings {
		fmt.Fprintf(&b, "<a class=\"l%d\" href=\"#%s\">%s</a>\n",
			h.Level, h.ID, template.HTMLEscapeString(h.Title))
	}
	return b.String()
}
