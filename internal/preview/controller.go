// Package preview serves a live, searchable rendering of a single markdown
// file over a loopback HTTP server.
package preview

import (
	"log"
	"sync"
	"time"

	"github.com/mdpeek/mdpeek/internal/document"
	"github.com/mdpeek/mdpeek/internal/feature"
	"github.com/mdpeek/mdpeek/internal/outline"
	"github.com/mdpeek/mdpeek/internal/render"
	"github.com/mdpeek/mdpeek/internal/search"
	"github.com/mdpeek/mdpeek/internal/watch"
)

// reloadMsg is pushed to connected pages when the document changes.
type reloadMsg struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Outline  []outline.Heading `json:"outline"`
	Features feature.Set       `json:"features"`
}

// SearchResult is the response body for a new search.
type SearchResult struct {
	Count   int       `json:"count"`
	Content string    `json:"content"`
	Markers []float64 `json:"markers"`
}

// Controller owns the viewer's mutable state: the current document, its
// rendered payload, and the active search session. All methods are safe for
// concurrent use.
type Controller struct {
	renderer *render.Renderer
	hub      *Hub

	// OnSidebar, when set, observes sidebar visibility changes. Set it
	// before the server starts.
	OnSidebar func(hidden bool)

	wg sync.WaitGroup

	mu            sync.Mutex
	theme         render.Theme
	sidebarHidden bool
	doc           *document.Document
	payload       *render.Payload
	session       *search.Session
	watcher       *watch.Watcher
	reloads       int
}

func NewController(renderer *render.Renderer, hub *Hub, theme render.Theme, sidebarHidden bool) *Controller {
	return &Controller{
		renderer:      renderer,
		hub:           hub,
		theme:         theme,
		sidebarHidden: sidebarHidden,
	}
}

// Open loads and renders the document at path. Unlike later reloads, a
// failure here is returned to the caller: the viewer must not start on a
// file it cannot show.
func (c *Controller) Open(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	payload, err := c.renderer.Render(doc, c.options())
	if err != nil {
		return err
	}
	c.doc = doc
	c.payload = payload
	c.session = nil
	return nil
}

// Watch starts watching the opened document and applying debounced reloads
// until Close.
func (c *Controller) Watch(debounce time.Duration) error {
	c.mu.Lock()
	path := c.doc.Path
	c.mu.Unlock()

	w, err := watch.New(path, debounce)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-w.Events():
				c.Refresh()
			case <-w.Done():
				return
			}
		}
	}()
	return nil
}

// Refresh re-reads the document and, when its content fingerprint actually
// changed, swaps in a fresh render and notifies connected pages. Failures
// leave the last good payload in place.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := document.Load(c.doc.Path)
	if err != nil {
		// Editors often replace files non-atomically; keep showing the
		// previous content until a readable version appears.
		log.Printf("preview: reloading %s: %v", c.doc.Path, err)
		return
	}
	if doc.Fingerprint == c.doc.Fingerprint {
		return
	}

	payload, err := c.renderer.Render(doc, c.options())
	if err != nil {
		log.Printf("preview: rendering %s: %v", doc.Path, err)
		return
	}

	c.doc = doc
	c.payload = payload
	c.session = nil
	c.reloads++

	c.hub.Broadcast(reloadMsg{
		Type:     "reload",
		Title:    doc.Title(),
		Content:  payload.ContentHTML,
		Source:   doc.Text,
		Outline:  doc.Outline,
		Features: doc.Features,
	})
}

// Reloads reports how many reloads have been applied (fingerprint-suppressed
// rewrites do not count).
func (c *Controller) Reloads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloads
}

// Page returns the full HTML document for the current state.
func (c *Controller) Page() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload.HTML
}

// Search starts a new search session over the current content.
func (c *Controller) Search(query string) (SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := search.New(c.payload.ContentHTML, query)
	if err != nil {
		return SearchResult{}, err
	}
	c.session = session
	return SearchResult{
		Count:   session.Count(),
		Content: session.HTML(),
		Markers: session.Markers(),
	}, nil
}

// SearchNext advances the active session to the next match, wrapping at the
// end. The second return is false when no session with matches is active.
func (c *Controller) SearchNext() (search.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Count() == 0 {
		return search.Position{}, false
	}
	return c.session.Next(), true
}

// SearchPrevious steps the active session back one match, wrapping at the
// start.
func (c *Controller) SearchPrevious() (search.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Count() == 0 {
		return search.Position{}, false
	}
	return c.session.Previous(), true
}

// SearchClear drops the active session and returns the unhighlighted
// content.
func (c *Controller) SearchClear() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	return c.payload.ContentHTML
}

// SetSidebar records the sidebar visibility so later page loads and exports
// reflect it.
func (c *Controller) SetSidebar(hidden bool) {
	c.mu.Lock()
	c.sidebarHidden = hidden
	if payload, err := c.renderer.Render(c.doc, c.options()); err == nil {
		c.payload = payload
	}
	cb := c.OnSidebar
	c.mu.Unlock()

	if cb != nil {
		cb(hidden)
	}
}

// Close stops the file watcher and waits for the reload loop to exit.
func (c *Controller) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.mu.Unlock()
	if w == nil {
		return nil
	}
	err := w.Close()
	c.wg.Wait()
	return err
}

func (c *Controller) options() render.Options {
	return render.Options{
		Theme:         c.theme,
		Variant:       render.Interactive,
		SidebarHidden: c.sidebarHidden,
	}
}
