// Package router classifies free-text input into a capability intent plus
// an extracted parameter. Rules live in one ordered table: groups are tried
// in priority order (weather > news > stock > search) and the first pattern
// that matches wins. Unmatched input is not an error, it just means no
// augmentation.
package router

import (
	"regexp"
	"strings"
)

// Intent is the capability a piece of input asks for.
type Intent int

const (
	None Intent = iota
	Weather
	News
	Stock
	Search
)

func (i Intent) String() string {
	switch i {
	case Weather:
		return "weather"
	case News:
		return "news"
	case Stock:
		return "stock"
	case Search:
		return "search"
	default:
		return "none"
	}
}

// Match is the outcome of classification. Param is the extracted location,
// topic, symbol, or query; empty when the intent needs none (general news).
type Match struct {
	Intent Intent
	Param  string
}

// rule pairs one pattern with its intent and an optional parameter
// transform. Patterns match case-insensitively against the original input
// so captured text keeps the user's casing.
type rule struct {
	intent    Intent
	re        *regexp.Regexp
	transform func(string) string
}

var rules = []rule{
	// Weather: capture free-text location.
	{Weather, regexp.MustCompile(`(?i)weather\s+in\s+([a-zA-Z\s]+)`), nil},
	{Weather, regexp.MustCompile(`(?i)weather\s+(?:for|at)\s+([a-zA-Z\s]+)`), nil},
	{Weather, regexp.MustCompile(`(?i)what'?s\s+the\s+weather\s+(?:in|at|for)\s+([a-zA-Z\s]+)`), nil},
	{Weather, regexp.MustCompile(`(?i)how'?s\s+the\s+weather\s+(?:in|at|for)\s+([a-zA-Z\s]+)`), nil},

	// News: topic captured when phrased "news about/on X", otherwise general.
	{News, regexp.MustCompile(`(?i)news\s+(?:about|on)\s+([a-zA-Z\s]+)`), nil},
	{News, regexp.MustCompile(`(?i)(?:latest|recent|current)\s+news`), nil},
	{News, regexp.MustCompile(`(?i)what'?s\s+(?:happening|going\s+on)`), nil},
	{News, regexp.MustCompile(`(?i)current\s+events`), nil},

	// Stock: letters-only ticker, upper-cased.
	{Stock, regexp.MustCompile(`(?i)stock\s+(?:(?:price|value|info)\s+)?(?:for|of)\s+([A-Za-z]+)`), strings.ToUpper},
	{Stock, regexp.MustCompile(`(?i)how\s+is\s+([A-Za-z]+)\s+stock`), strings.ToUpper},
	{Stock, regexp.MustCompile(`(?i)what'?s\s+([A-Za-z]+)\s+stock\s+(?:price|doing)`), strings.ToUpper},

	// Generic search: capture free-text query.
	{Search, regexp.MustCompile(`(?i)search\s+(?:for|about)\s+([a-zA-Z0-9\s]+)`), nil},
	{Search, regexp.MustCompile(`(?i)find\s+(?:info|information)\s+(?:about|on)\s+([a-zA-Z0-9\s]+)`), nil},
	{Search, regexp.MustCompile(`(?i)who\s+is\s+([a-zA-Z\s]+)`), nil},
	{Search, regexp.MustCompile(`(?i)what\s+is\s+([a-zA-Z0-9\s]+)`), nil},
	{Search, regexp.MustCompile(`(?i)tell\s+me\s+about\s+([a-zA-Z0-9\s]+)`), nil},
	{Search, regexp.MustCompile(`(?i)how\s+(?:to|do|does|can)\s+([a-zA-Z0-9\s]+)`), nil},
}

// Route classifies input against the rule table, first match wins.
func Route(input string) Match {
	for _, r := range rules {
		groups := r.re.FindStringSubmatch(input)
		if groups == nil {
			continue
		}
		param := ""
		if len(groups) > 1 {
			param = strings.TrimSpace(groups[1])
		}
		if r.transform != nil {
			param = r.transform(param)
		}
		return Match{Intent: r.intent, Param: param}
	}
	return Match{Intent: None}
}
