// Package evidence resolves evidence text for scoring: inline strings,
// local files, or fetched web pages reduced to visible text.
package evidence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/halidex/internal/cache"
	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/util"
	"github.com/ppiankov/halidex/internal/worker"
)

const maxRedirects = 3

// Fetcher retrieves evidence pages with robots.txt, rate limit, and cache
// layers in front of the actual HTTP call.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *robotsGate
	limiter    *worker.HostLimiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher from HTTP config. cache may be nil to
// disable evidence caching.
func NewFetcher(cfg model.HTTPConfig, c cache.Cache, ttl time.Duration) *Fetcher {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		robots:     newRobotsGate(client, cfg.UserAgent),
		limiter:    worker.NewHostLimiter(1, 2),
		cache:      c,
		cacheTTL:   ttl,
	}
}

// FetchURL downloads the page at rawURL and returns its visible text.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	key := cache.Key("evidence", rawURL)
	if f.cache != nil {
		if data, found := f.cache.Get(key); found {
			return string(data), nil
		}
	}

	allowed, crawlDelay := f.robots.canFetch(ctx, parsed)
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, parsed.Host, crawlDelay); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := string(body)
	if isHTML(resp.Header.Get("Content-Type")) {
		text = ExtractText(text)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content at %s", rawURL)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, []byte(text), f.cacheTTL)
	}
	return text, nil
}

// ReadFile loads evidence text from a local file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read evidence file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("evidence file %s is empty", path)
	}
	return text, nil
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
