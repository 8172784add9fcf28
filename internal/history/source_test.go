package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chromiumTS converts an instant to the Chromium epoch in microseconds.
func chromiumTS(t time.Time) int64 {
	return (t.Unix() + 11644473600) * 1000000
}

// firefoxTS converts an instant to Firefox microseconds.
func firefoxTS(t time.Time) int64 {
	return t.Unix() * 1000000
}

type fixtureVisit struct {
	url        string
	title      string
	visitCount int
	lastVisit  int64
}

// createChromiumFixture builds a minimal Chromium-family History database.
func createChromiumFixture(t *testing.T, visits []fixtureVisit) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY,
		url TEXT,
		title TEXT,
		visit_count INTEGER,
		last_visit_time INTEGER
	)`)
	require.NoError(t, err)

	for _, v := range visits {
		_, err = db.Exec(
			"INSERT INTO urls (url, title, visit_count, last_visit_time) VALUES (?, ?, ?, ?)",
			v.url, v.title, v.visitCount, v.lastVisit,
		)
		require.NoError(t, err)
	}
	return path
}

// createFirefoxFixture builds a places.sqlite. With withVisits, per-visit
// rows go into moz_historyvisits; otherwise the legacy single-table shape
// is used with last_visit_date on moz_places.
func createFirefoxFixture(t *testing.T, withVisits bool, visits []fixtureVisit) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.sqlite")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE moz_places (
		id INTEGER PRIMARY KEY,
		url TEXT,
		title TEXT,
		visit_count INTEGER,
		last_visit_date INTEGER
	)`)
	require.NoError(t, err)

	if withVisits {
		_, err = db.Exec(`CREATE TABLE moz_historyvisits (
			id INTEGER PRIMARY KEY,
			place_id INTEGER,
			visit_date INTEGER
		)`)
		require.NoError(t, err)
	}

	for i, v := range visits {
		_, err = db.Exec(
			"INSERT INTO moz_places (id, url, title, visit_count, last_visit_date) VALUES (?, ?, ?, ?, ?)",
			i+1, v.url, v.title, v.visitCount, v.lastVisit,
		)
		require.NoError(t, err)

		if withVisits {
			_, err = db.Exec(
				"INSERT INTO moz_historyvisits (place_id, visit_date) VALUES (?, ?)",
				i+1, v.lastVisit,
			)
			require.NoError(t, err)
		}
	}
	return path
}

func TestExportChromium_WindowAndOrdering(t *testing.T) {
	now := time.Now().UTC()
	path := createChromiumFixture(t, []fixtureVisit{
		{"https://old.example.com", "Old", 3, chromiumTS(now.Add(-30 * 24 * time.Hour))},
		{"https://recent.example.com", "Recent", 2, chromiumTS(now.Add(-2 * time.Hour))},
		{"https://yesterday.example.com", "Yesterday", 1, chromiumTS(now.Add(-24 * time.Hour))},
	})

	table, err := ExportChromium(context.Background(), path, Window{DaysBack: 7, Now: now})
	require.NoError(t, err)

	// Only the two visits inside the window, most recent first.
	require.Len(t, table.Records, 2)
	assert.Equal(t, "https://recent.example.com", table.Records[0].URL)
	assert.Equal(t, "https://yesterday.example.com", table.Records[1].URL)
	assert.Equal(t, 2, table.Records[0].VisitCount)
	assert.NotEmpty(t, table.Records[0].LastVisitTime)
}

func TestExportChromium_ClassifiesRows(t *testing.T) {
	now := time.Now().UTC()
	path := createChromiumFixture(t, []fixtureVisit{
		{"https://www.google.com/search?q=python+tutorial", "", 1, chromiumTS(now.Add(-time.Hour))},
		{"https://example.com/news", "News", 1, chromiumTS(now.Add(-2 * time.Hour))},
	})

	table, err := ExportChromium(context.Background(), path, Window{DaysBack: 7, Now: now})
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	search := table.Records[0]
	assert.Equal(t, "python tutorial", search.SearchQuery)
	assert.True(t, search.IsEducational) // "tutorial" keyword

	plain := table.Records[1]
	assert.Empty(t, plain.SearchQuery)
	assert.False(t, plain.IsEducational)
}

func TestExportChromium_ZeroSentinelTimestamp(t *testing.T) {
	now := time.Now().UTC()
	// A raw value that passes the window filter but converts out of range.
	path := createChromiumFixture(t, []fixtureVisit{
		{"https://example.com", "X", 1, 9223372036854775807},
	})

	table, err := ExportChromium(context.Background(), path, Window{DaysBack: 7, Now: now})
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "", table.Records[0].LastVisitTime, "unconvertible timestamp yields empty field, not an error")
}

func TestExportChromium_ZeroDaysBack(t *testing.T) {
	now := time.Now().UTC()
	path := createChromiumFixture(t, []fixtureVisit{
		{"https://example.com", "X", 1, chromiumTS(now.Add(-time.Minute))},
	})

	table, err := ExportChromium(context.Background(), path, Window{DaysBack: 0, Now: now})
	require.NoError(t, err)
	assert.Empty(t, table.Records, "days_back=0 puts the cutoff at now")
}

func TestExportChromium_NegativeDaysBack(t *testing.T) {
	_, err := ExportChromium(context.Background(), "irrelevant", Window{DaysBack: -1})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExportChromium_MissingStore(t *testing.T) {
	_, err := ExportChromium(context.Background(),
		filepath.Join(t.TempDir(), "nope", "History"), Window{DaysBack: 7})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestExportFirefox_WithVisitsTable(t *testing.T) {
	now := time.Now().UTC()
	path := createFirefoxFixture(t, true, []fixtureVisit{
		{"https://a.example.com", "A", 4, firefoxTS(now.Add(-time.Hour))},
		{"https://b.example.com", "B", 1, firefoxTS(now.Add(-3 * time.Hour))},
		{"https://stale.example.com", "Stale", 9, firefoxTS(now.Add(-90 * 24 * time.Hour))},
	})

	table, err := ExportFirefox(context.Background(), path, Window{DaysBack: 7, Now: now})
	require.NoError(t, err)

	require.Len(t, table.Records, 2)
	assert.Equal(t, "https://a.example.com", table.Records[0].URL)
	assert.Equal(t, "https://b.example.com", table.Records[1].URL)
}

func TestExportFirefox_LegacyShape(t *testing.T) {
	now := time.Now().UTC()
	path := createFirefoxFixture(t, false, []fixtureVisit{
		{"https://legacy.example.com", "Legacy", 2, firefoxTS(now.Add(-time.Hour))},
	})

	table, err := ExportFirefox(context.Background(), path, Window{DaysBack: 7, Now: now})
	require.NoError(t, err)

	require.Len(t, table.Records, 1)
	assert.Equal(t, "https://legacy.example.com", table.Records[0].URL)
	assert.Equal(t, 2, table.Records[0].VisitCount)
}

func TestOpenFirefox_DetectsShapeOnce(t *testing.T) {
	now := time.Now().UTC()
	path := createFirefoxFixture(t, true, []fixtureVisit{
		{"https://a.example.com", "A", 1, firefoxTS(now.Add(-time.Hour))},
	})

	src, err := OpenFirefox(path)
	require.NoError(t, err)
	defer src.Close()

	ff, ok := src.(*firefoxSource)
	require.True(t, ok)
	assert.True(t, ff.hasVisits)
}

func TestSnapshot_RemovesCopy(t *testing.T) {
	now := time.Now().UTC()
	path := createChromiumFixture(t, []fixtureVisit{
		{"https://example.com", "X", 1, chromiumTS(now.Add(-time.Minute))},
	})

	snap, cleanup, err := Snapshot(path)
	require.NoError(t, err)
	require.FileExists(t, snap)

	cleanup()
	assert.NoFileExists(t, snap)
}

func TestExportChromium_CorruptStore(t *testing.T) {
	// A file without the expected schema is "present but unreadable": the
	// failure must not be ErrStoreNotFound.
	path := createFirefoxFixture(t, false, nil)

	_, err := ExportChromium(context.Background(), path, Window{DaysBack: 7})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreNotFound)
}
