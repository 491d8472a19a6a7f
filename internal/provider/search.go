package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lotirium/SUNDAY/internal/cache"
)

// DefaultSearchCount is how many hits a search returns unless the caller
// asks for more.
const DefaultSearchCount = 3

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs a web search, preferring the keyed SerpAPI and degrading to a
// DuckDuckGo Lite scrape on any failure (missing key, network, bad status,
// malformed payload). Hits come back in upstream order, truncated to n.
func (c *Client) Search(ctx context.Context, query string, n int) ([]SearchHit, error) {
	const op = "search"
	if n <= 0 {
		n = DefaultSearchCount
	}

	key := cache.Key(query, strconv.Itoa(n))
	if v, ok := c.cached(op, key); ok {
		return v.([]SearchHit), nil
	}

	if c.creds.Serp != "" {
		if hits, err := c.searchAPI(ctx, query, n); err == nil {
			c.store(op, key, hits)
			return hits, nil
		}
		// fall through to the scrape path
	}

	hits, err := c.searchScrape(ctx, query, n)
	if err != nil {
		return nil, err
	}
	c.store(op, key, hits)
	return hits, nil
}

func (c *Client) searchAPI(ctx context.Context, query string, n int) ([]SearchHit, error) {
	const op = "search"

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.creds.Serp)
	params.Set("num", strconv.Itoa(n))

	resp, err := c.get(ctx, c.searchURL, params)
	if err != nil {
		return nil, errNetwork(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errUpstreamStatus(op, resp.StatusCode, "")
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, errParse(op, err)
	}
	if len(sr.OrganicResults) == 0 {
		return nil, errNoData(op, "no results found for "+query)
	}

	hits := make([]SearchHit, 0, n)
	for _, r := range sr.OrganicResults {
		if len(hits) >= n {
			break
		}
		title := r.Title
		if title == "" {
			title = "No Title"
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = "No description available"
		}
		hits = append(hits, SearchHit{Title: title, Link: r.Link, Snippet: snippet})
	}
	return hits, nil
}

// searchScrape is the keyless degraded mode: parse the DuckDuckGo Lite
// results page and keep absolute-href anchors with non-empty text, in
// document order. Best effort against markup drift.
func (c *Client) searchScrape(ctx context.Context, query string, n int) ([]SearchHit, error) {
	const op = "search"

	params := url.Values{}
	params.Set("q", query)

	resp, err := c.get(ctx, c.searchFallbackURL, params)
	if err != nil {
		return nil, errNetwork(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errUpstreamStatus(op, resp.StatusCode, "")
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, errParse(op, err)
	}

	hits := collectAnchors(doc, n)
	if len(hits) == 0 {
		return nil, errNoData(op, "no results found for "+query)
	}
	return hits, nil
}

func collectAnchors(doc *html.Node, n int) []SearchHit {
	var hits []SearchHit
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if len(hits) >= n {
			return
		}
		if node.Type == html.ElementNode && node.Data == "a" {
			href := attr(node, "href")
			title := strings.TrimSpace(nodeText(node))
			// Relative links are navigation chrome, not results.
			if title != "" && strings.HasPrefix(href, "http") {
				hits = append(hits, SearchHit{
					Title:   title,
					Link:    href,
					Snippet: "Description not available",
				})
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hits
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(b.String()), " ")
}
