package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/lotirium/SUNDAY/internal/cache"
)

type owmResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

type owmError struct {
	Cod     any    `json:"cod"` // OWM sends this as string or number
	Message string `json:"message"`
}

// Weather looks up current conditions for a free-text location, in metric
// units. Unknown locations yield a NoData error.
func (c *Client) Weather(ctx context.Context, location string) (*WeatherResult, error) {
	const op = "weather"
	key := cache.Key(location)
	if v, ok := c.cached(op, key); ok {
		return v.(*WeatherResult), nil
	}

	if c.creds.Weather == "" {
		return nil, errMissingCredential(op)
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.creds.Weather)
	params.Set("units", "metric")

	resp, err := c.get(ctx, c.weatherURL, params)
	if err != nil {
		return nil, errNetwork(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		var oe owmError
		if err := json.NewDecoder(resp.Body).Decode(&oe); err == nil && oe.Message != "" {
			return nil, errNoData(op, oe.Message)
		}
		return nil, errNoData(op, "location not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errUpstreamStatus(op, resp.StatusCode, "")
	}

	var or owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, errParse(op, err)
	}
	if len(or.Weather) == 0 {
		return nil, errNoData(op, "no conditions reported for "+location)
	}

	loc := or.Name
	if or.Sys.Country != "" {
		loc += ", " + or.Sys.Country
	}
	w := &WeatherResult{
		Location:    loc,
		Temperature: or.Main.Temp,
		FeelsLike:   or.Main.FeelsLike,
		Description: or.Weather[0].Description,
		Humidity:    or.Main.Humidity,
		WindSpeed:   or.Wind.Speed,
		ObservedAt:  time.Unix(or.Dt, 0).UTC(),
	}
	c.store(op, key, w)
	return w, nil
}
