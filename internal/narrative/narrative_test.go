package narrative

import (
	"strings"
	"testing"

	"github.com/lotirium/SUNDAY/internal/provider"
)

func TestWeather(t *testing.T) {
	got := Weather(&provider.WeatherResult{
		Location:    "Paris, FR",
		Temperature: 18,
		FeelsLike:   17.2,
		Description: "scattered clouds",
		Humidity:    60,
		WindSpeed:   4.1,
	})

	for _, want := range []string{"Paris", "18", "60", "scattered clouds", "Boss"} {
		if !strings.Contains(got, want) {
			t.Errorf("weather fragment missing %q: %s", want, got)
		}
	}
}

func TestNews(t *testing.T) {
	got := News([]provider.NewsArticle{
		{Title: "Headline One", Source: "Reuters", Description: "First story"},
		{Title: "Headline Two", Source: "BBC", Description: "Second story"},
	})

	if !strings.Contains(got, "Title: Headline One") {
		t.Errorf("missing headline: %s", got)
	}
	if !strings.Contains(got, "INSTRUCTION:") {
		t.Error("missing summarization instruction")
	}
	if !strings.Contains(got, "Do NOT use numbering, bullet points") {
		t.Error("missing formatting constraint")
	}
}

func TestStock(t *testing.T) {
	got := Stock(&provider.StockQuote{
		Symbol:         "TSLA",
		Price:          "242.84",
		Change:         "-3.21",
		ChangePercent:  "-1.30%",
		Volume:         "98133445",
		LastTradingDay: "2026-08-27",
	})

	for _, want := range []string{"TSLA", "$242.84", "-1.30%", "2026-08-27"} {
		if !strings.Contains(got, want) {
			t.Errorf("stock fragment missing %q: %s", want, got)
		}
	}
}

func TestSearch(t *testing.T) {
	hits := []provider.SearchHit{
		{Title: "Result A", Snippet: "about A"},
		{Title: "Result B", Snippet: "about B"},
	}
	got := Search("go generics", hits, "extracted page text")

	if !strings.Contains(got, "1. Result A: about A") {
		t.Errorf("missing numbered hit: %s", got)
	}
	if !strings.Contains(got, "Details from top result:\nextracted page text") {
		t.Errorf("missing detail section: %s", got)
	}
}

func TestSearchNoDetail(t *testing.T) {
	got := Search("x", []provider.SearchHit{{Title: "T", Snippet: "s"}}, "")
	if strings.Contains(got, "Details from top result") {
		t.Error("detail section should be absent")
	}
}

func TestFailureNeutral(t *testing.T) {
	err := &provider.Error{Op: "stock", Kind: provider.MissingCredential}
	got := Failure("stock", err)

	if !strings.Contains(got, "lookup failed") {
		t.Errorf("expected neutral failure fragment, got %q", got)
	}
	if strings.Contains(got, "Boss") {
		t.Error("failure fragments must not be persona-voiced")
	}
}
