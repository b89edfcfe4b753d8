package document

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	content := "# Title\n\nbody with $math$\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Text != content {
		t.Errorf("Text = %q, want %q", doc.Text, content)
	}
	if len(doc.Outline) != 1 || doc.Outline[0].ID != "title" {
		t.Errorf("unexpected outline: %+v", doc.Outline)
	}
	if !doc.Features.Math {
		t.Error("expected math feature to be detected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFingerprintStability(t *testing.T) {
	a := FromBytes("x.md", []byte("same content"))
	b := FromBytes("y.md", []byte("same content"))
	if a.Fingerprint != b.Fingerprint {
		t.Error("identical content must produce identical fingerprints")
	}

	c := FromBytes("x.md", []byte("different content"))
	if a.Fingerprint == c.Fingerprint {
		t.Error("different content should produce different fingerprints")
	}
}
