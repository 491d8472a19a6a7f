// Package narrative turns structured provider results into the
// persona-voiced context fragments SUNDAY slips to the chat model. Every
// result variant has exactly one template and every failure a neutral
// fallback, so formatting never fails.
package narrative

import (
	"fmt"
	"strings"

	"github.com/lotirium/SUNDAY/internal/provider"
)

// Weather renders current conditions in SUNDAY's voice.
func Weather(w *provider.WeatherResult) string {
	return fmt.Sprintf(
		"I've analyzed atmospheric conditions for %s, Boss. Temperature is %.1f°C (feels like %.1f°C), %s, humidity %d%%, wind speed %.1f m/s. Would you like me to set up a weather monitoring protocol?",
		w.Location, w.Temperature, w.FeelsLike, w.Description, w.Humidity, w.WindSpeed,
	)
}

// newsInstruction tells the model how to phrase the briefing: prose, not
// bullets, in character.
const newsInstruction = `INSTRUCTION: Using the news data above, create a natural, conversational summary of current events.
Do NOT use numbering, bullet points, or bold formatting in your response.
Speak as SUNDAY, casually briefing the user on what's happening in the world.
Address the user as 'Boss' and keep SUNDAY's helpful, slightly sassy personality.
Include 3-5 major news topics in your own words, not just repeating the headlines.
End with an offer to provide more details on any topic that might interest the user.`

// News renders the raw headline data plus the summarization instruction.
func News(articles []provider.NewsArticle) string {
	var b strings.Builder
	b.WriteString("News data:\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Source: %s\n", a.Source)
		fmt.Fprintf(&b, "Description: %s\n\n", a.Description)
	}
	b.WriteString(newsInstruction)
	return b.String()
}

// Stock renders a quote snapshot in SUNDAY's voice.
func Stock(q *provider.StockQuote) string {
	return fmt.Sprintf(
		"Boss, I've accessed financial networks for %s. Current price $%s, change %s (%s), volume %s, last trading day %s. Shall I activate continuous monitoring for this security?",
		q.Symbol, q.Price, q.Change, q.ChangePercent, q.Volume, q.LastTradingDay,
	)
}

// Search renders numbered hits plus optional detail text pulled from the
// top result.
func Search(query string, hits []provider.SearchHit, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've conducted a sweep of available data on %s, Boss. Here's what I've found:\n\n", query)
	for i, h := range hits {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, h.Title, h.Snippet)
	}
	if detail != "" {
		fmt.Fprintf(&b, "\nDetails from top result:\n%s\n", detail)
	}
	b.WriteString("\nI can dig deeper if needed. Would you like me to expand on any particular aspect?")
	return b.String()
}

// Failure renders a classified provider error as a neutral fragment, not a
// persona one, so the caller can decide whether to surface or mask it.
func Failure(capability string, err error) string {
	return fmt.Sprintf("%s lookup failed: %v", capability, err)
}
