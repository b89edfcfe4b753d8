// Package scheme resolves mdpeek:// URLs and plain arguments to validated
// file paths.
package scheme

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Scheme is the custom URL scheme the viewer registers for.
const Scheme = "mdpeek"

// Resolve turns a command argument (a plain path or a mdpeek:// URL) into
// an absolute, existing file path. The URL form accepts either a direct path
// segment (mdpeek:///home/me/notes.md) or a file query parameter
// (mdpeek://open?file=notes.md). Malformed URLs and missing files are
// reported immediately; no partial state change happens.
func Resolve(arg string) (string, error) {
	path := arg
	if strings.HasPrefix(arg, Scheme+":") {
		p, err := pathFromURL(arg)
		if err != nil {
			return "", err
		}
		path = p
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if info, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("file not found: %s", abs)
	} else if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a markdown file", abs)
	}
	return abs, nil
}

func pathFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != Scheme {
		return "", fmt.Errorf("invalid URL %q: unsupported scheme %q", raw, u.Scheme)
	}

	if p := u.Query().Get("file"); p != "" {
		return p, nil
	}
	if u.Opaque != "" {
		return u.Opaque, nil
	}
	// mdpeek://open/path and mdpeek:///path both carry the path segment;
	// any other host is a malformed request.
	if u.Host != "" && u.Host != "open" {
		return "", fmt.Errorf("invalid URL %q: unexpected host %q", raw, u.Host)
	}
	if u.Path == "" || u.Path == "/" {
		return "", fmt.Errorf("invalid URL %q: no file given", raw)
	}
	return u.Path, nil
}
