package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/halidex/internal/cache"
	"github.com/ppiankov/halidex/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "halidex-test",
		MaxBodyBytes: 1 << 20,
	}
}

func TestExtractText(t *testing.T) {
	html := `<html><head><title>t</title><style>body{}</style></head>
<body><h1>Quarterly Report</h1><script>alert(1)</script>
<p>Revenue grew 15% in Q2.</p><noscript>enable js</noscript></body></html>`

	got := ExtractText(html)
	if !strings.Contains(got, "Quarterly Report") {
		t.Errorf("text %q missing heading", got)
	}
	if !strings.Contains(got, "Revenue grew 15% in Q2.") {
		t.Errorf("text %q missing paragraph", got)
	}
	for _, banned := range []string{"alert", "body{}", "enable js", "<p>"} {
		if strings.Contains(got, banned) {
			t.Errorf("text %q contains %q", got, banned)
		}
	}
}

func TestExtractTextCollapsesWhitespace(t *testing.T) {
	got := ExtractText("<p>  one  </p>\n\n<p>two</p>")
	if got != "one two" {
		t.Errorf("got %q, want %q", got, "one two")
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body><p>Evidence body text.</p></body></html>")
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, 0)
	got, err := f.FetchURL(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("FetchURL: %v", err)
	}
	if got != "Evidence body text." {
		t.Errorf("got %q", got)
	}
}

func TestFetchURLRobotsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		_, _ = fmt.Fprint(w, "secret")
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, 0)
	if _, err := f.FetchURL(context.Background(), srv.URL+"/private/page"); err == nil {
		t.Error("expected robots.txt to block the fetch")
	}

	// Paths outside the disallow rule still fetch
	if _, err := f.FetchURL(context.Background(), srv.URL+"/public"); err != nil {
		t.Errorf("allowed path failed: %v", err)
	}
}

func TestFetchURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(testHTTPConfig(), nil, 0)
	if _, err := f.FetchURL(context.Background(), srv.URL+"/page"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestFetchURLUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<p>cached body</p>")
	}))
	defer srv.Close()

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	f := NewFetcher(testHTTPConfig(), c, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := f.FetchURL(context.Background(), srv.URL+"/page")
		if err != nil {
			t.Fatalf("FetchURL: %v", err)
		}
		if got != "cached body" {
			t.Errorf("got %q", got)
		}
	}
	if hits != 1 {
		t.Errorf("origin hits = %d, want 1", hits)
	}
}

func TestFetchURLRejectsBadScheme(t *testing.T) {
	f := NewFetcher(testHTTPConfig(), nil, 0)
	if _, err := f.FetchURL(context.Background(), "ftp://example.com/file"); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestFetchURLBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, strings.Repeat("x", 1000))
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	f := NewFetcher(cfg, nil, 0)

	got, err := f.FetchURL(context.Background(), srv.URL+"/big")
	if err != nil {
		t.Fatalf("FetchURL: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("body length = %d, want truncated to 100", len(got))
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evidence.txt")
	if err := os.WriteFile(path, []byte("  evidence text\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "evidence text" {
		t.Errorf("got %q", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	_ = os.WriteFile(empty, []byte("   \n"), 0644)
	if _, err := ReadFile(empty); err == nil {
		t.Error("expected error for empty file")
	}
}
