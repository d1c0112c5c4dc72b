package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/pagewatch/internal/domain"
	"github.com/hamed0406/pagewatch/internal/eventlog"
	"github.com/hamed0406/pagewatch/internal/fetch"
	"github.com/hamed0406/pagewatch/internal/httpapi/middleware"
	"github.com/hamed0406/pagewatch/internal/monitor"
	"github.com/hamed0406/pagewatch/internal/registry"
	"github.com/hamed0406/pagewatch/internal/snapshot"
)

func TestIsValidHTTPURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://EXAMPLE.com", true},
		{"ftp://x", false},
		{"", false},
		{"https://", false},
	}
	for _, c := range cases {
		if got := isValidHTTPURL(c.in); got != c.want {
			t.Fatalf("isValidHTTPURL(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeHTTPURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://EXAMPLE.com/", "https://example.com"},
		{"http://example.com:80", "http://example.com"},
		{"https://example.com:443/", "https://example.com"},
		{"https://example.com/p/", "https://example.com/p/"},
	}
	for _, c := range cases {
		if got := normalizeHTTPURL(c.in); got != c.want {
			t.Fatalf("normalizeHTTPURL(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func newTestServer(t *testing.T) (*Server, registry.Registry) {
	t.Helper()
	reg, err := registry.NewFileRegistry(filepath.Join(t.TempDir(), "sites.json"))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	var logBuf bytes.Buffer
	runner := monitor.NewRunner(
		zap.NewNop(),
		reg,
		snapshot.NewMemoryStore(),
		fetch.NewHTTPFetcher(fetch.Options{}),
		eventlog.New(&logBuf),
		nil,
		1,
	)
	return NewServer(zap.NewNop(), reg, runner, middleware.Keys{}, 0, 0), reg
}

func TestAddListAndCheckFlow(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Welcome to Example</p></body></html>"))
	}))
	defer page.Close()

	srv, _ := newTestServer(t)
	api := httptest.NewServer(srv.Router())
	defer api.Close()

	// Add a site.
	body, _ := json.Marshal(map[string]any{
		"url":      page.URL,
		"keywords": []string{" layoffs ", ""},
	})
	resp, err := http.Post(api.URL+"/api/sites", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/sites: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var added domain.Target
	_ = json.NewDecoder(resp.Body).Decode(&added)
	resp.Body.Close()
	if len(added.Keywords) != 1 || added.Keywords[0] != "layoffs" {
		t.Fatalf("keywords not cleaned: %v", added.Keywords)
	}

	// Duplicate is a conflict.
	resp, err = http.Post(api.URL+"/api/sites", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST dup: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 for duplicate, got %d", resp.StatusCode)
	}

	// List shows it.
	resp, err = http.Get(api.URL + "/api/sites")
	if err != nil {
		t.Fatalf("GET /api/sites: %v", err)
	}
	var sites []domain.Target
	_ = json.NewDecoder(resp.Body).Decode(&sites)
	resp.Body.Close()
	if len(sites) != 1 || sites[0].URL != added.URL {
		t.Fatalf("list wrong: %+v", sites)
	}

	// Manual check initializes the snapshot.
	resp, err = http.Post(api.URL+"/api/checks", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/checks: %v", err)
	}
	var results []domain.CheckResult
	_ = json.NewDecoder(resp.Body).Decode(&results)
	resp.Body.Close()
	if len(results) != 1 || results[0].Status != domain.StatusInitialized {
		t.Fatalf("check results wrong: %+v", results)
	}
}

func TestAddSite_RejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	api := httptest.NewServer(srv.Router())
	defer api.Close()

	for _, body := range []string{`{"url":"ftp://nope"}`, `{"url":""}`, `not json`} {
		resp, err := http.Post(api.URL+"/api/sites", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: want 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestListSites_EmptyRegistryIsEmptyArray(t *testing.T) {
	srv, _ := newTestServer(t)
	api := httptest.NewServer(srv.Router())
	defer api.Close()

	resp, err := http.Get(api.URL + "/api/sites")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("want [], got %q", got)
	}
}

func TestAdminRoutesRequireAdminKey(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Keys = middleware.Keys{Public: []string{"pub"}, Admin: []string{"adm"}}
	api := httptest.NewServer(srv.Router())
	defer api.Close()

	req, _ := http.NewRequest(http.MethodPost, api.URL+"/api/sites",
		strings.NewReader(`{"url":"https://example.com"}`))
	req.Header.Set("X-API-Key", "pub")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("public key on admin route: want 403, got %d", resp.StatusCode)
	}
}
