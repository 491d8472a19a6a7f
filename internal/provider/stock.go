package provider

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/lotirium/SUNDAY/internal/cache"
)

// Alpha Vantage numbers its quote fields.
type avResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

// Quote fetches a GLOBAL_QUOTE snapshot for an upper-cased ticker symbol.
// An empty quote object (unknown symbol, exhausted API budget) is NoData.
func (c *Client) Quote(ctx context.Context, symbol string) (*StockQuote, error) {
	const op = "stock"
	key := cache.Key(symbol)
	if v, ok := c.cached(op, key); ok {
		return v.(*StockQuote), nil
	}

	if c.creds.Stock == "" {
		return nil, errMissingCredential(op)
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.creds.Stock)

	resp, err := c.get(ctx, c.stockURL, params)
	if err != nil {
		return nil, errNetwork(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, errUpstreamStatus(op, resp.StatusCode, "")
	}

	var ar avResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, errParse(op, err)
	}
	if len(ar.GlobalQuote) == 0 {
		return nil, errNoData(op, "no quote found for "+symbol)
	}

	field := func(k, fallback string) string {
		if v, ok := ar.GlobalQuote[k]; ok && v != "" {
			return v
		}
		return fallback
	}
	q := &StockQuote{
		Symbol:         field("01. symbol", symbol),
		Price:          field("05. price", "N/A"),
		Change:         field("09. change", "N/A"),
		ChangePercent:  field("10. change percent", "N/A"),
		Volume:         field("06. volume", "N/A"),
		LastTradingDay: field("07. latest trading day", "N/A"),
	}
	c.store(op, key, q)
	return q, nil
}
