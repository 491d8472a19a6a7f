// Package provider wraps the external data sources SUNDAY can reach for:
// weather, news headlines, stock quotes, web search, and raw webpage text.
// Each fetch returns a typed result or a classified *Error; successes are
// cached, failures always retry on the next request.
package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/lotirium/SUNDAY/internal/cache"
)

// Some sites block default Go clients, so all requests carry a realistic
// browser user-agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const defaultTimeout = 10 * time.Second

// Credentials holds the optional API keys. An empty key means the matching
// capability answers with a MissingCredential error instead of crashing.
type Credentials struct {
	Serp    string // SerpAPI (web search)
	Weather string // OpenWeatherMap
	News    string // NewsAPI
	Stock   string // Alpha Vantage
}

// Config configures a Client. Base URLs default to the real services and
// exist so tests can point at httptest servers.
type Config struct {
	Credentials Credentials
	Timeout     time.Duration

	WeatherBaseURL        string
	NewsBaseURL           string
	StockBaseURL          string
	SearchBaseURL         string
	SearchFallbackBaseURL string
}

// Client performs the remote lookups. Safe for concurrent use; the cache
// serializes per-key access internally.
type Client struct {
	creds Credentials
	http  *http.Client
	cache *cache.Store

	weatherURL        string
	newsURL           string
	stockURL          string
	searchURL         string
	searchFallbackURL string
}

// New creates a Client. A nil store disables caching.
func New(cfg Config, store *cache.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		creds:             cfg.Credentials,
		http:              &http.Client{Timeout: timeout},
		cache:             store,
		weatherURL:        cfg.WeatherBaseURL,
		newsURL:           cfg.NewsBaseURL,
		stockURL:          cfg.StockBaseURL,
		searchURL:         cfg.SearchBaseURL,
		searchFallbackURL: cfg.SearchFallbackBaseURL,
	}
	if c.weatherURL == "" {
		c.weatherURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	if c.newsURL == "" {
		c.newsURL = "https://newsapi.org/v2/top-headlines"
	}
	if c.stockURL == "" {
		c.stockURL = "https://www.alphavantage.co/query"
	}
	if c.searchURL == "" {
		c.searchURL = "https://serpapi.com/search"
	}
	if c.searchFallbackURL == "" {
		c.searchFallbackURL = "https://lite.duckduckgo.com/lite/"
	}
	return c
}

// get performs a GET with the browser user-agent and query params attached.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("User-Agent", userAgent)
	return c.http.Do(req)
}

func (c *Client) cached(kind, key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(kind, key)
}

func (c *Client) store(kind, key string, v any) {
	if c.cache != nil {
		c.cache.Put(kind, key, v)
	}
}
