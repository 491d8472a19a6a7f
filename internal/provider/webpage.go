package provider

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/lotirium/SUNDAY/internal/cache"
)

// DefaultPageLength bounds how much page text a lookup extracts.
const DefaultPageLength = 2000

const truncationMarker = "..."

// Page fetches a webpage and extracts its visible text: script and style
// subtrees are dropped, whitespace is collapsed per line, and the result is
// truncated to maxLen characters plus a marker.
func (c *Client) Page(ctx context.Context, pageURL string, maxLen int) (*PageContent, error) {
	const op = "webpage"
	if maxLen <= 0 {
		maxLen = DefaultPageLength
	}

	key := cache.Key(pageURL)
	if v, ok := c.cached(op, key); ok {
		return clipPage(v.(string), maxLen), nil
	}

	resp, err := c.get(ctx, pageURL, nil)
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

	text := extractText(doc)
	c.store(op, key, text)
	return clipPage(text, maxLen), nil
}

func clipPage(text string, maxLen int) *PageContent {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return &PageContent{Text: text}
	}
	return &PageContent{Text: string(runes[:maxLen]) + truncationMarker, Truncated: true}
}

// extractText walks the document collecting text nodes outside script/style,
// collapsing runs of whitespace and joining non-empty lines.
func extractText(doc *html.Node) string {
	var raw strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			raw.WriteString(n.Data)
			raw.WriteByte('\n')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	var lines []string
	for _, line := range strings.Split(raw.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
