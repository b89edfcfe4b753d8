package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig holds preview server configuration.
type ServerConfig struct {
	Port    int  // 0 picks a free port
	Verbose bool // log every request
}

// Server exposes the preview page, the reload websocket, and the search API
// on a loopback listener.
type Server struct {
	cfg        ServerConfig
	ctrl       *Controller
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
	listener   net.Listener
}

func NewServer(cfg ServerConfig, ctrl *Controller, hub *Hub) *Server {
	s := &Server{cfg: cfg, ctrl: ctrl, hub: hub}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.Verbose {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.HandleWS)

	r.Post("/api/search", s.handleSearch)
	r.Post("/api/search/next", s.handleSearchNext)
	r.Post("/api/search/prev", s.handleSearchPrev)
	r.Post("/api/search/clear", s.handleSearchClear)
	r.Post("/api/sidebar", s.handleSidebar)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.ctrl.Page()))
}

// searchRequest is the JSON body for the /api/search endpoint.
type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	result, err := s.ctrl.Search(strings.TrimSpace(req.Query))
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleSearchNext(w http.ResponseWriter, r *http.Request) {
	pos, ok := s.ctrl.SearchNext()
	if !ok {
		http.Error(w, `{"error":"no active search"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, pos)
}

func (s *Server) handleSearchPrev(w http.ResponseWriter, r *http.Request) {
	pos, ok := s.ctrl.SearchPrevious()
	if !ok {
		http.Error(w, `{"error":"no active search"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, pos)
}

func (s *Server) handleSearchClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"content": s.ctrl.SearchClear()})
}

// sidebarRequest is the JSON body for the /api/sidebar endpoint.
type sidebarRequest struct {
	Hidden bool `json:"hidden"`
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	s.ctrl.SetSidebar(req.Hidden)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Listen binds the loopback listener so URL is known before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("binding preview listener: %w", err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return nil
}

// URL returns the base URL of the bound listener. Valid after Listen.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Serve blocks serving requests until Shutdown.
func (s *Server) Serve() error {
	if err := s.httpServer.Serve(s.listener); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
