package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDebounceCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "v0")

	w, err := New(path, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// A burst of writes inside one debounce window.
	for i := 0; i < 5; i++ {
		writeFile(t, path, "burst")
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a debounced event")
	}

	// The burst must have collapsed into that single delivery.
	select {
	case <-w.Events():
		t.Error("burst produced a second event")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestUnrelatedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "v0")

	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.md"), "noise")

	select {
	case <-w.Events():
		t.Error("change to a sibling file should not notify")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestCloseSignalsDone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "v0")

	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Done():
		t.Fatal("Done closed before Close")
	default:
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after Close; consumers would leak")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "v0")

	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
