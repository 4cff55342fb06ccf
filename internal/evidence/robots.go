package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate checks robots.txt before fetching evidence pages.
// Parsed robots data is cached per host for the lifetime of the fetcher.
type robotsGate struct {
	cache      map[string]*robotstxt.RobotsData
	mu         sync.RWMutex
	httpClient *http.Client
	userAgent  string
}

func newRobotsGate(client *http.Client, userAgent string) *robotsGate {
	return &robotsGate{
		cache:      make(map[string]*robotstxt.RobotsData),
		httpClient: client,
		userAgent:  userAgent,
	}
}

// canFetch reports whether the URL may be fetched and any crawl delay the
// site requests. A missing or unreachable robots.txt allows the fetch.
func (g *robotsGate) canFetch(ctx context.Context, u *url.URL) (bool, time.Duration) {
	data, err := g.robotsData(ctx, u)
	if err != nil {
		return true, 0
	}

	allowed := data.TestAgent(u.Path, g.userAgent)

	var delay time.Duration
	if group := data.FindGroup(g.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return allowed, delay
}

func (g *robotsGate) robotsData(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, ok := g.cache[u.Host]
	g.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create robots request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.cache[u.Host] = data
	g.mu.Unlock()

	return data, nil
}
