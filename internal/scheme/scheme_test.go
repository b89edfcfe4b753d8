package scheme

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePlainPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("Resolve = %q, want %q", got, path)
	}
}

func TestResolveURLForms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# x"), 0o644); err != nil {
		t.Fatal(err)
	}

	urls := []string{
		"mdpeek://" + path, // path is absolute, so this is mdpeek:///...
		"mdpeek://open?file=" + url.QueryEscape(path),
	}
	for _, raw := range urls {
		got, err := Resolve(raw)
		if err != nil {
			t.Errorf("Resolve(%q): %v", raw, err)
			continue
		}
		if got != path {
			t.Errorf("Resolve(%q) = %q, want %q", raw, got, path)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.md")},
		{"empty url", "mdpeek://"},
		{"bad host", "mdpeek://frobnicate/x.md"},
		{"missing url target", "mdpeek://open?file=" + url.QueryEscape(filepath.Join(t.TempDir(), "gone.md"))},
		{"directory", t.TempDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.arg); err == nil {
				t.Errorf("Resolve(%q) succeeded, want error", tt.arg)
			}
		})
	}
}
