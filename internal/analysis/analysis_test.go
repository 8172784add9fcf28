package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyscope/studyscope/internal/history"
)

const header = "URL,Title,Visit Count,Last Visit Time,Search Query,Is Educational\n"

func TestAnalyze_EndToEndScenario(t *testing.T) {
	csvText := header +
		"https://www.google.com/search?q=python+tutorial,,1,2021-01-01T00:00:00Z,python tutorial,True\n" +
		"https://github.com/x,,1,2021-01-01T00:00:00Z,,True\n" +
		"https://example.com,,1,2021-01-01T00:00:00Z,,False\n"

	ctx, err := Analyze(csvText)
	require.NoError(t, err)

	assert.Equal(t, 3, ctx.TotalVisits)
	assert.Equal(t, 1, ctx.SearchQueriesCount)
	assert.Equal(t, 2, ctx.EducationalVisits)
	assert.Equal(t, []string{"python tutorial"}, ctx.SearchQueries)
	assert.Contains(t, ctx.TopInterests, "Programming")
	assert.Equal(t, []string{"google.com", "github.com"}, ctx.EducationalDomains)
	assert.Equal(t, []string{"python tutorial"}, ctx.StudyTopics)
}

func TestAnalyze_TopInterestsSingleCategory(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(header)
	for i := 0; i < 5; i++ {
		sb.WriteString(fmt.Sprintf("https://site%d.io/python,,1,,,False\n", i))
	}

	ctx, err := Analyze(sb.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"Programming"}, ctx.TopInterests)
}

func TestAnalyze_NoKeywordMatches(t *testing.T) {
	csvText := header +
		"https://zzz.example,,1,,,False\n" +
		"https://qqq.example,,1,,,False\n"

	ctx, err := Analyze(csvText)
	require.NoError(t, err)
	assert.Empty(t, ctx.TopInterests, "zero-score categories are excluded")
}

func TestAnalyze_EducationalDomainDeduplication(t *testing.T) {
	csvText := header +
		"https://www.coursera.org/learn/go,,1,,,True\n" +
		"https://coursera.org/learn/python,,1,,,True\n" +
		"https://www.edx.org/cs,,1,,,True\n"

	ctx, err := Analyze(csvText)
	require.NoError(t, err)
	assert.Equal(t, []string{"coursera.org", "edx.org"}, ctx.EducationalDomains)
}

func TestAnalyze_Caps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(header)
	// 30 distinct searches, all educational, 30 distinct domains.
	for i := 0; i < 30; i++ {
		sb.WriteString(fmt.Sprintf("https://www.site%02d.example/x,,1,,term%02d,True\n", i, i))
	}

	ctx, err := Analyze(sb.String())
	require.NoError(t, err)

	assert.Equal(t, 30, ctx.TotalVisits)
	assert.Equal(t, 30, ctx.SearchQueriesCount)
	assert.Len(t, ctx.SearchQueries, 20)
	assert.Equal(t, "term00", ctx.SearchQueries[0], "table order, not re-sorted")
	assert.Len(t, ctx.EducationalDomains, 10)
	assert.Len(t, ctx.StudyTopics, 15)
	assert.LessOrEqual(t, len(ctx.TopInterests), 5)
}

func TestAnalyze_Idempotent(t *testing.T) {
	csvText := header +
		"https://www.google.com/search?q=calculus,,2,2021-01-01T00:00:00Z,calculus,True\n" +
		"https://www.khanacademy.org/math,,5,2021-01-01T00:00:00Z,,True\n"

	first, err := Analyze(csvText)
	require.NoError(t, err)
	second, err := Analyze(csvText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_RoundTripWithExporter(t *testing.T) {
	table := &history.Table{Records: []history.VisitRecord{
		{URL: "https://www.google.com/search?q=jee+preparation", SearchQuery: "jee preparation", VisitCount: 1, IsEducational: false},
		{URL: "https://example.com/a, with commas", Title: "Odd, Title", VisitCount: 2},
		{URL: "https://www.coursera.org/learn/statistics", Title: "Statistics", VisitCount: 3, IsEducational: true},
	}}

	ctx, err := Analyze(table.CSV())
	require.NoError(t, err)
	assert.Equal(t, len(table.Records), ctx.TotalVisits)
	assert.Equal(t, 1, ctx.SearchQueriesCount)
	assert.Equal(t, 1, ctx.EducationalVisits)
}

func TestAnalyze_MissingHeader(t *testing.T) {
	_, err := Analyze("URL,Title\nhttps://a.example,A\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	_, err := Analyze("")
	assert.Error(t, err)
}

func TestAnalyze_EmptyTable(t *testing.T) {
	ctx, err := Analyze(header)
	require.NoError(t, err)
	assert.Equal(t, 0, ctx.TotalVisits)
	assert.Empty(t, ctx.SearchQueries)
	assert.Empty(t, ctx.TopInterests)
	assert.Empty(t, ctx.EducationalDomains)
}

func TestAnalyze_EducationalNeverExceedsTotal(t *testing.T) {
	csvText := header +
		"https://a.example,,1,,,True\n" +
		"https://b.example,,1,,,True\n" +
		"https://c.example,,1,,,False\n"

	ctx, err := Analyze(csvText)
	require.NoError(t, err)
	assert.LessOrEqual(t, ctx.EducationalVisits, ctx.TotalVisits)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Programming", displayName("programming"))
	assert.Equal(t, "Data Science", displayName("data_science"))
	assert.Equal(t, "Exam Prep", displayName("exam_prep"))
}
