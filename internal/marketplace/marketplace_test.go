package marketplace

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// countingLimiter records admissions without blocking.
type countingLimiter struct {
	acquired int
}

func (l *countingLimiter) Acquire() {
	l.acquired++
}

func newContentsServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/contents", func(w http.ResponseWriter, r *http.Request) {
		entries := []map[string]string{
			{"name": "fullAppDisplay.js", "type": "file", "download_url": server.URL + "/raw/fullAppDisplay.js"},
			{"name": "shuffle+.js", "type": "file", "download_url": server.URL + "/raw/shuffle+.js"},
			{"name": "README.md", "type": "file", "download_url": server.URL + "/raw/README.md"},
			{"name": "subdir", "type": "dir", "download_url": ""},
		}
		json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("// extension body"))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSearchFiltersAndRateLimits(t *testing.T) {
	server := newContentsServer(t)
	limiter := &countingLimiter{}
	client := NewClient(limiter)

	listings, err := client.Search([]string{server.URL + "/contents"}, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Only .js files, no dirs or docs.
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d: %v", len(listings), listings)
	}
	if limiter.acquired != 1 {
		t.Errorf("expected 1 rate-limited call, got %d", limiter.acquired)
	}

	listings, err = client.Search([]string{server.URL + "/contents"}, "SHUFFLE")
	if err != nil {
		t.Fatalf("Search with query failed: %v", err)
	}
	if len(listings) != 1 || listings[0].Name != "shuffle+.js" {
		t.Errorf("case-insensitive query failed: %v", listings)
	}
}

func TestSearchMultipleSources(t *testing.T) {
	server := newContentsServer(t)
	limiter := &countingLimiter{}
	client := NewClient(limiter)

	sources := []string{server.URL + "/contents", server.URL + "/contents"}
	listings, err := client.Search(sources, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(listings) != 4 {
		t.Errorf("expected results from both sources, got %d", len(listings))
	}
	if limiter.acquired != 2 {
		t.Errorf("each source should be one rate-limited call, got %d", limiter.acquired)
	}
}

func TestSearchReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(&countingLimiter{})
	_, err := client.Search([]string{server.URL}, "")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should name the status, got %v", err)
	}
}

func TestSearchSendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer server.Close()

	client := NewClient(&countingLimiter{})
	client.SetToken("ghp_abc")

	if _, err := client.Search([]string{server.URL}, ""); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotAuth != "token ghp_abc" {
		t.Errorf("expected token header, got %q", gotAuth)
	}
}

func TestDownload(t *testing.T) {
	server := newContentsServer(t)
	limiter := &countingLimiter{}
	client := NewClient(limiter)

	listings, err := client.Search([]string{server.URL + "/contents"}, "full")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}

	destDir := filepath.Join(t.TempDir(), "Extensions")
	dest, err := client.Download(listings[0], destDir)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read installed file: %v", err)
	}
	if string(data) != "// extension body" {
		t.Errorf("unexpected file content: %q", data)
	}
	if filepath.Base(dest) != "fullAppDisplay.js" {
		t.Errorf("unexpected destination name: %s", dest)
	}

	// Search plus download: two admissions.
	if limiter.acquired != 2 {
		t.Errorf("expected 2 rate-limited calls, got %d", limiter.acquired)
	}
}

func TestSourcesRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiceman", "sources.yaml")

	s, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources on missing file failed: %v", err)
	}
	if len(s.Custom) != 0 {
		t.Errorf("fresh registry should be empty, got %v", s.Custom)
	}

	all := s.All()
	if len(all) != 1 || all[0] != DefaultSource {
		t.Errorf("default source missing: %v", all)
	}

	s.Add("https://api.github.com/repos/user/repo/contents")
	s.Add("https://api.github.com/repos/user/repo/contents") // duplicate
	if len(s.Custom) != 1 {
		t.Errorf("duplicate add should be ignored: %v", s.Custom)
	}

	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadSources(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(loaded.Custom) != 1 || loaded.Custom[0] != "https://api.github.com/repos/user/repo/contents" {
		t.Errorf("registry not round-tripped: %v", loaded.Custom)
	}

	loaded.Remove("https://api.github.com/repos/user/repo/contents")
	if len(loaded.Custom) != 0 {
		t.Errorf("Remove failed: %v", loaded.Custom)
	}
}
