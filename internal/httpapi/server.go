// Package httpapi exposes the registry and the manual check trigger over
// HTTP: add a site, list sites, run a check cycle on demand.
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pagewatch/internal/domain"
	"github.com/hamed0406/pagewatch/internal/httpapi/middleware"
	"github.com/hamed0406/pagewatch/internal/monitor"
	"github.com/hamed0406/pagewatch/internal/registry"
)

type Server struct {
	Logger    *zap.Logger
	Registry  registry.Registry
	Runner    *monitor.Runner
	Keys      middleware.Keys
	RateRPM   int
	RateBurst int
}

func NewServer(l *zap.Logger, reg registry.Registry, runner *monitor.Runner, keys middleware.Keys, rpm, burst int) *Server {
	return &Server{Logger: l, Registry: reg, Runner: runner, Keys: keys, RateRPM: rpm, RateBurst: burst}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RateRPM, s.RateBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAny(s.Keys))
		r.Get("/api/sites", s.handleListSites)
		r.Post("/api/checks", s.handleRunCheck)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.Keys))
		r.Post("/api/sites", s.handleAddSite)
	})

	return r
}

type addPayload struct {
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleAddSite(w http.ResponseWriter, r *http.Request) {
	var p addPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if !isValidHTTPURL(p.URL) {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}

	t := domain.Target{
		URL:       normalizeHTTPURL(p.URL),
		Keywords:  cleanKeywords(p.Keywords),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Registry.Add(r.Context(), t); err != nil {
		if strings.Contains(err.Error(), "already registered") {
			http.Error(w, "duplicate url", http.StatusConflict)
			return
		}
		s.Logger.Warn("add_site_error", zap.String("url", t.URL), zap.Error(err))
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}

	s.Logger.Info("added_site",
		zap.String("url", t.URL),
		zap.Strings("keywords", t.Keywords),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	targets, err := s.Registry.Load(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	if targets == nil {
		targets = []domain.Target{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(targets)
}

// handleRunCheck runs one full cycle synchronously and returns the per-target
// results in registry order.
func (s *Server) handleRunCheck(w http.ResponseWriter, r *http.Request) {
	results := s.Runner.RunCheck(r.Context())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}

func cleanKeywords(in []string) []string {
	var out []string
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// isValidHTTPURL accepts only absolute http/https URLs with a host.
func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// normalizeHTTPURL lowercases the host, drops default ports, and trims a
// bare trailing slash so the same page registers under one identity.
func normalizeHTTPURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Host = strings.ToLower(u.Host)
	switch {
	case strings.ToLower(u.Scheme) == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case strings.ToLower(u.Scheme) == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
