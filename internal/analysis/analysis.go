// Package analysis turns an exported history table into a counseling
// context: aggregate counts, recent search queries, educational domains,
// and a keyword-scored interest ranking.
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/studyscope/studyscope/internal/classify"
)

// Caps applied to the derived lists.
const (
	maxSearchQueries      = 20
	maxEducationalRows    = 20
	maxEducationalDomains = 10
	maxTopInterests       = 5
	maxStudyTopics        = 15
)

// CounselingContext is the aggregated interest summary for one uploaded
// history table. It is a pure function of the table: identical input
// yields an identical context.
type CounselingContext struct {
	TotalVisits        int      `json:"total_visits"`
	SearchQueriesCount int      `json:"search_queries_count"`
	EducationalVisits  int      `json:"educational_visits"`
	SearchQueries      []string `json:"search_queries"`
	EducationalDomains []string `json:"educational_domains"`
	TopInterests       []string `json:"top_interests"`
	StudyTopics        []string `json:"study_topics"`
}

// row is one parsed visit with only the fields the analyzer reads.
type row struct {
	url         string
	title       string
	searchQuery string
	educational bool
}

// Analyze parses the canonical CSV form of a history table and computes
// its counseling context. Malformed input (missing header columns, ragged
// rows) is a fatal validation error; no partial context is returned.
func Analyze(csvText string) (*CounselingContext, error) {
	rows, err := parseTable(csvText)
	if err != nil {
		return nil, err
	}

	ctx := &CounselingContext{
		TotalVisits:        len(rows),
		SearchQueries:      []string{},
		EducationalDomains: []string{},
		TopInterests:       []string{},
		StudyTopics:        []string{},
	}

	var queries []string
	var eduRows []row
	for _, r := range rows {
		if r.searchQuery != "" {
			queries = append(queries, r.searchQuery)
		}
		if r.educational {
			eduRows = append(eduRows, r)
		}
	}

	ctx.SearchQueriesCount = len(queries)
	ctx.EducationalVisits = len(eduRows)
	ctx.SearchQueries = capped(queries, maxSearchQueries)
	ctx.EducationalDomains = educationalDomains(eduRows)
	ctx.TopInterests = topInterests(rows)
	ctx.StudyTopics = dedupe(capped(queries, maxStudyTopics))

	return ctx, nil
}

// parseTable reads the canonical CSV with header-driven field access.
func parseTable(csvText string) ([]row, error) {
	reader := csv.NewReader(strings.NewReader(csvText))

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read history header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"URL", "Title", "Search Query", "Is Educational"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("invalid history table: missing %q column", required)
		}
	}

	var rows []row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history row: %w", err)
		}
		rows = append(rows, row{
			url:         fields[index["URL"]],
			title:       fields[index["Title"]],
			searchQuery: fields[index["Search Query"]],
			educational: fields[index["Is Educational"]] == "True",
		})
	}
	return rows, nil
}

// educationalDomains walks educational rows in table order, extracts
// www-stripped hosts from the first maxEducationalRows candidates,
// deduplicates preserving first-seen order, and caps the result.
func educationalDomains(eduRows []row) []string {
	domains := []string{}
	seen := make(map[string]bool)

	for _, r := range cappedRows(eduRows, maxEducationalRows) {
		domain := classify.Domain(r.url)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		domains = append(domains, domain)
	}

	if len(domains) > maxEducationalDomains {
		domains = domains[:maxEducationalDomains]
	}
	return domains
}

// topInterests scores the fixed categories against a single case-folded
// blob of every row's URL, title, and query. Matches are plain substring
// counts, deliberately not word-boundary-aware.
func topInterests(rows []row) []string {
	var parts []string
	for _, r := range rows {
		parts = append(parts, r.url+" "+r.title+" "+r.searchQuery)
	}
	blob := strings.ToLower(strings.Join(parts, " "))

	type score struct {
		name  string
		count int
	}
	scores := make([]score, 0, len(categories))
	for _, cat := range categories {
		total := 0
		for _, kw := range cat.keywords {
			total += strings.Count(blob, kw)
		}
		scores = append(scores, score{name: cat.name, count: total})
	}

	// Stable keeps declaration order between equal scores.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].count > scores[j].count })

	top := []string{}
	for _, s := range scores {
		if s.count == 0 || len(top) == maxTopInterests {
			break
		}
		top = append(top, displayName(s.name))
	}
	return top
}

func capped(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func cappedRows(items []row, n int) []row {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// dedupe removes duplicates preserving first-seen order. The study-topics
// list is a set; the stable order is a convenience, not a contract.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
