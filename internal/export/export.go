// Package export writes standalone HTML and PDF renditions of markdown
// documents.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mdpeek/mdpeek/internal/document"
	"github.com/mdpeek/mdpeek/internal/progress"
	"github.com/mdpeek/mdpeek/internal/render"
)

// markdownExtensions are the file extensions treated as markdown during
// tree export.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkdn":     true,
	".mkd":      true,
}

// pdfEngines are tried in order when no engine is configured. Any
// Chromium-derived browser that supports --print-to-pdf works.
var pdfEngines = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
	"microsoft-edge",
	"msedge",
	"brave-browser",
}

// HTML renders the markdown file at srcPath into a self-contained static
// HTML document at outPath.
func HTML(r *render.Renderer, srcPath, outPath string, theme render.Theme) error {
	doc, err := document.Load(srcPath)
	if err != nil {
		return err
	}
	payload, err := r.Render(doc, render.Options{Theme: theme, Variant: render.Static})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(payload.HTML), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// PDF renders the markdown file at srcPath to PDF at outPath by printing
// the static HTML through a headless browser. engine may name or point to
// a specific browser binary; when empty, well-known Chromium binaries are
// tried in order.
func PDF(r *render.Renderer, srcPath, outPath string, theme render.Theme, engine string) error {
	bin, err := findPDFEngine(engine)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "mdpeek-*.html")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := HTML(r, srcPath, tmpPath, theme); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cmd := exec.Command(bin,
		"--headless",
		"--disable-gpu",
		"--no-pdf-header-footer",
		"--print-to-pdf="+outPath,
		tmpPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdf engine %s: %w\n%s", bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func findPDFEngine(engine string) (string, error) {
	if engine != "" {
		bin, err := exec.LookPath(engine)
		if err != nil {
			return "", fmt.Errorf("pdf engine %q not found in PATH", engine)
		}
		return bin, nil
	}
	for _, name := range pdfEngines {
		if bin, err := exec.LookPath(name); err == nil {
			return bin, nil
		}
	}
	return "", errors.New("no PDF engine found: install a Chromium-based browser or set pdf_engine")
}

// Tree exports every markdown file under root into outDir, mirroring the
// directory layout with .html files. Include and exclude are doublestar
// globs matched against the slash-separated path relative to root; an empty
// include list matches everything. Per-file failures are logged and
// collected, not fatal.
func Tree(r *render.Renderer, root, outDir string, theme render.Theme, include, exclude []string, rep progress.Reporter) (int, error) {
	files, err := collectMarkdownFiles(root, include, exclude)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	if rep == nil {
		rep = progress.Quiet{}
	}
	rep.Start(len(files))

	var errs []error
	for _, rel := range files {
		rep.Step(rel)
		src := filepath.Join(root, rel)
		out := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html")
		if err := HTML(r, src, out, theme); err != nil {
			log.Printf("export: %s: %v", rel, err)
			errs = append(errs, err)
		}
	}
	exported := len(files) - len(errs)
	rep.Done(exported, len(errs))
	return exported, errors.Join(errs...)
}

func collectMarkdownFiles(root string, include, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !markdownExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slashed := filepath.ToSlash(rel)
		if !matchAny(include, slashed, true) || matchAny(exclude, slashed, false) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// matchAny reports whether path matches any of the patterns. emptyMatches
// controls the result for an empty pattern list.
func matchAny(patterns []string, path string, emptyMatches bool) bool {
	if len(patterns) == 0 {
		return emptyMatches
	}
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
