// Package classify provides pure URL heuristics: search-engine query
// detection, query extraction, and a coarse educational-domain check.
package classify

import (
	"net/url"
	"strings"
)

// educationalKeywords is a curated substring list matched against the whole
// URL. It is intentionally coarse: "github" or "learn" will overmatch, and
// that is accepted. Callers get a hint, not a taxonomy.
var educationalKeywords = []string{
	"edu", "coursera", "udemy", "khan", "edx", "youtube.com/watch",
	"stackoverflow", "github", "medium", "wikipedia", "scholar",
	"arxiv", "researchgate", "quora", "reddit.com/r/learn",
	"tutorial", "learn", "course", "lecture", "study",
}

// IsSearchURL reports whether rawURL is a search-engine results page for
// Google, Bing, DuckDuckGo, or Yahoo. Malformed URLs classify as false.
func IsSearchURL(rawURL string) bool {
	u, err := url.Parse(strings.ToLower(rawURL))
	if err != nil {
		return false
	}

	domain := strings.Replace(u.Host, "www.", "", 1)
	query := u.RawQuery

	switch {
	case strings.Contains(domain, "google"):
		if strings.Contains(u.Path, "/search") || strings.Contains(query, "tbm=") {
			return strings.Contains(query, "q=") || strings.Contains(query, "query=")
		}
	case strings.Contains(domain, "bing.com"):
		if strings.Contains(u.Path, "/search") {
			return strings.Contains(query, "q=")
		}
	case strings.Contains(domain, "duckduckgo.com"):
		return strings.Contains(query, "q=")
	case strings.Contains(domain, "yahoo.com"):
		if strings.Contains(u.Path, "/search") {
			return strings.Contains(query, "p=")
		}
	}
	return false
}

// ExtractSearchQuery returns the first non-empty value among the "q", "p",
// and "query" parameters, in that priority order. Returns "" when the URL
// does not parse or carries none of them.
func ExtractSearchQuery(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return ""
	}
	for _, name := range []string{"q", "p", "query"} {
		if v := params.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// IsEducationalDomain reports whether the URL contains any educational
// keyword, case-insensitively.
func IsEducationalDomain(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, kw := range educationalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Domain extracts the registrable host from a URL with a leading "www."
// stripped. Returns "" for unparseable input.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
