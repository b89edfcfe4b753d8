package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func mustStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSettings(t *testing.T) {
	s := mustStore(t)

	got, err := s.Setting(KeyTheme)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("unset setting = %q, want empty", got)
	}

	if err := s.SetSetting(KeyTheme, "sepia"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting(KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	got, err = s.Setting(KeyTheme)
	if err != nil {
		t.Fatal(err)
	}
	if got != "dark" {
		t.Errorf("setting = %q, want dark (last write wins)", got)
	}
}

func TestRecentFilesOrderAndDedup(t *testing.T) {
	s := mustStore(t)
	dir := t.TempDir()

	a := touchFile(t, dir, "a.md")
	b := touchFile(t, dir, "b.md")

	for _, p := range []string{a, b, a} { // a touched again: moves to front
		if err := s.TouchRecent(p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentFiles = %v, want 2 deduplicated entries", got)
	}
	if filepath.Base(got[0]) != "a.md" {
		t.Errorf("most recent first: got %v", got)
	}
}

func TestRecentFilesCapped(t *testing.T) {
	s := mustStore(t)
	dir := t.TempDir()

	for i := 0; i < MaxRecentFiles+5; i++ {
		p := touchFile(t, dir, fmt.Sprintf("f%02d.md", i))
		if err := s.TouchRecent(p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != MaxRecentFiles {
		t.Errorf("len = %d, want %d", len(got), MaxRecentFiles)
	}
}

func TestRecentFilesSkipStale(t *testing.T) {
	s := mustStore(t)
	dir := t.TempDir()

	keep := touchFile(t, dir, "keep.md")
	gone := touchFile(t, dir, "gone.md")
	for _, p := range []string{keep, gone} {
		if err := s.TouchRecent(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	got, err := s.RecentFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "keep.md" {
		t.Errorf("stale entries must be skipped gracefully, got %v", got)
	}
}

func TestClearRecent(t *testing.T) {
	s := mustStore(t)
	dir := t.TempDir()
	if err := s.TouchRecent(touchFile(t, dir, "a.md")); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearRecent(); err != nil {
		t.Fatal(err)
	}
	got, err := s.RecentFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("after clear: %v", got)
	}
}
