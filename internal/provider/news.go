package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/lotirium/SUNDAY/internal/cache"
)

// DefaultNewsCount is how many headlines a news lookup returns unless the
// caller asks for more.
const DefaultNewsCount = 3

type newsResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// News fetches top English headlines for a topic category. An empty topic
// means "general". NoData when the upstream reports failure or nothing.
func (c *Client) News(ctx context.Context, topic string, count int) ([]NewsArticle, error) {
	const op = "news"
	if topic == "" {
		topic = "general"
	}
	if count <= 0 {
		count = DefaultNewsCount
	}

	key := cache.Key(topic, strconv.Itoa(count))
	if v, ok := c.cached(op, key); ok {
		return v.([]NewsArticle), nil
	}

	if c.creds.News == "" {
		return nil, errMissingCredential(op)
	}

	params := url.Values{}
	params.Set("category", topic)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(count))
	params.Set("apiKey", c.creds.News)

	resp, err := c.get(ctx, c.newsURL, params)
	if err != nil {
		return nil, errNetwork(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errUpstreamStatus(op, resp.StatusCode, "")
	}

	var nr newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, errParse(op, err)
	}
	if nr.Status != "ok" {
		return nil, errNoData(op, "upstream reported status "+nr.Status)
	}
	if len(nr.Articles) == 0 {
		return nil, errNoData(op, "no headlines found for "+topic)
	}

	articles := make([]NewsArticle, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		desc := a.Description
		if desc == "" {
			desc = "No description available"
		}
		articles = append(articles, NewsArticle{
			Title:       a.Title,
			Source:      a.Source.Name,
			Description: desc,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	c.store(op, key, articles)
	return articles, nil
}
