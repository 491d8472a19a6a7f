package provider

import "time"

// WeatherResult holds current conditions for one location.
type WeatherResult struct {
	Location    string // "Paris, FR"
	Temperature float64
	FeelsLike   float64
	Description string
	Humidity    int
	WindSpeed   float64
	ObservedAt  time.Time
}

// NewsArticle is one headline from the news API.
type NewsArticle struct {
	Title       string
	Source      string
	Description string
	URL         string
	PublishedAt string
}

// StockQuote holds one GLOBAL_QUOTE snapshot. Numeric fields stay as the
// upstream strings: they are rendered verbatim, never computed on.
type StockQuote struct {
	Symbol         string
	Price          string
	Change         string
	ChangePercent  string
	Volume         string
	LastTradingDay string
}

// SearchHit is one web search result, from the keyed API or the scrape
// fallback.
type SearchHit struct {
	Title   string
	Link    string
	Snippet string
}

// PageContent is extracted webpage text, truncated to the caller's limit.
type PageContent struct {
	Text      string
	Truncated bool
}
