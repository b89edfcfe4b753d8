// Package assets resolves and memoizes static asset payloads (stylesheets,
// script bundles) used by the document renderer.
package assets

import (
	"embed"
	"log"
	"os"
	"path/filepath"

	gocache "github.com/patrickmn/go-cache"
)

//go:embed embedded
var embedded embed.FS

// Well-known asset names. The base stylesheet ships embedded in the binary;
// the third-party bundles are distributed alongside it and looked up on disk.
const (
	BaseStylesheet = "styles.css"
	MermaidJS      = "mermaid.min.js"
	KatexJS        = "katex.min.js"
	KatexCSS       = "katex.min.css"
	KatexAutoJS    = "katex-auto-render.min.js"
)

// Cache memoizes asset payloads for the process lifetime. Lookups try the
// configured override directory first, then the bundle directory next to the
// executable, then the embedded defaults. Entries are never evicted: the
// asset set is a fixed build-time manifest, not user data.
type Cache struct {
	overrideDir string
	bundleDir   string
	store       *gocache.Cache
}

// NewCache creates a cache. overrideDir may be empty, in which case only the
// executable-adjacent bundle directory and the embedded defaults are tried.
func NewCache(overrideDir string) *Cache {
	c := &Cache{
		overrideDir: overrideDir,
		store:       gocache.New(gocache.NoExpiration, 0),
	}
	if exe, err := os.Executable(); err == nil {
		c.bundleDir = filepath.Join(filepath.Dir(exe), "assets")
	}
	return c
}

// Get returns the named asset's content. The first call for a name performs
// the multi-location lookup; later calls are served from memory with no I/O.
// A miss everywhere degrades to an empty payload with a logged warning; a
// missing optional bundle must never block rendering.
func (c *Cache) Get(name string) string {
	if v, ok := c.store.Get(name); ok {
		return v.(string)
	}
	content := c.load(name)
	c.store.Set(name, content, gocache.NoExpiration)
	return content
}

func (c *Cache) load(name string) string {
	for _, dir := range []string{c.overrideDir, c.bundleDir} {
		if dir == "" {
			continue
		}
		if data, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			return string(data)
		}
	}
	if data, err := embedded.ReadFile("embedded/" + name); err == nil {
		return string(data)
	}
	log.Printf("assets: %s not found in any location, rendering without it", name)
	return ""
}
