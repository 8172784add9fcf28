// Package history reads browser history stores (Chromium-family and
// Firefox SQLite layouts) and exports them as one canonical visit table.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studyscope/studyscope/internal/classify"
)

var (
	// ErrStoreNotFound means the history database does not exist at the
	// given path, i.e. the browser is not installed or has no profile.
	ErrStoreNotFound = errors.New("history store not found")

	// ErrInvalidWindow means the requested lookback window is negative.
	ErrInvalidWindow = errors.New("days back must be >= 0")
)

// Window is the export lookback: visits with a last-visit time at or after
// Now - DaysBack days are included. DaysBack of 0 puts the cutoff at Now
// itself, which yields an empty table.
type Window struct {
	DaysBack int
	Now      time.Time // zero value means time.Now
}

// Validate rejects negative lookbacks before any store is touched.
func (w Window) Validate() error {
	if w.DaysBack < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, w.DaysBack)
	}
	return nil
}

// cutoff returns the UTC instant before which visits are excluded.
func (w Window) cutoff() time.Time {
	now := w.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().Add(-time.Duration(w.DaysBack) * 24 * time.Hour)
}

// Source exports one browser history store. A Source is resolved to a
// concrete schema variant once, at open time, and holds a read-only
// connection to a private snapshot of the live database.
type Source interface {
	Export(ctx context.Context, w Window) (*Table, error)
	Close() error
}

// OpenChromium opens a Chromium-family history database (Chrome, Chromium,
// Brave, Edge) at path. The file must already be a private snapshot; the
// connection is read-only.
func OpenChromium(path string) (Source, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	return &chromiumSource{db: db}, nil
}

// OpenFirefox opens a Firefox places database at path, detecting which of
// the two Gecko shapes is present: a places table joined with per-visit
// rows, or a legacy places table carrying its own last-visit column.
func OpenFirefox(path string) (Source, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}

	hasVisits, err := tableExists(db, "moz_historyvisits")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("detect firefox schema: %w", err)
	}
	return &firefoxSource{db: db, hasVisits: hasVisits}, nil
}

func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return db, nil
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var found string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// chromiumSource reads the Chromium-family layout: a single urls table
// keyed by URL with aggregate visit_count and last_visit_time columns.
type chromiumSource struct {
	db *sql.DB
}

func (s *chromiumSource) Export(ctx context.Context, w Window) (*Table, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	// The cutoff is converted into the Chromium epoch so the filter and
	// the ORDER BY both run against the raw column.
	chromiumCutoff := (w.cutoff().Unix() + chromiumEpochOffsetMicros/1000000) * 1000000

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, visit_count, last_visit_time
		FROM urls
		WHERE last_visit_time >= ?
		ORDER BY last_visit_time DESC
	`, chromiumCutoff)
	if err != nil {
		return nil, fmt.Errorf("query chromium history: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows, ChromiumToISO)
}

func (s *chromiumSource) Close() error { return s.db.Close() }

// firefoxSource reads the Gecko layout. When the per-visit table exists,
// places are joined with their visits; otherwise the legacy last-visit
// column on moz_places is used directly.
type firefoxSource struct {
	db        *sql.DB
	hasVisits bool
}

func (s *firefoxSource) Export(ctx context.Context, w Window) (*Table, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	firefoxCutoff := w.cutoff().Unix() * 1000000

	query := `
		SELECT url, title, visit_count, last_visit_date
		FROM moz_places
		WHERE url IS NOT NULL AND last_visit_date >= ?
		ORDER BY last_visit_date DESC
	`
	if s.hasVisits {
		query = `
			SELECT DISTINCT p.url, p.title, p.visit_count,
			       MAX(h.visit_date) AS last_visit_date
			FROM moz_places p
			LEFT JOIN moz_historyvisits h ON p.id = h.place_id
			WHERE p.url IS NOT NULL AND h.visit_date >= ?
			GROUP BY p.id
			ORDER BY last_visit_date DESC
		`
	}

	rows, err := s.db.QueryContext(ctx, query, firefoxCutoff)
	if err != nil {
		return nil, fmt.Errorf("query firefox history: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows, FirefoxToISO)
}

func (s *firefoxSource) Close() error { return s.db.Close() }

// scanVisits builds the canonical table from an export result set,
// normalizing the raw timestamp with toISO and classifying each URL.
func scanVisits(rows *sql.Rows, toISO func(int64) string) (*Table, error) {
	table := &Table{Records: []VisitRecord{}}

	for rows.Next() {
		var (
			url        string
			title      sql.NullString
			visitCount sql.NullInt64
			lastVisit  sql.NullInt64
		)
		if err := rows.Scan(&url, &title, &visitCount, &lastVisit); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}

		rec := VisitRecord{
			URL:           url,
			Title:         title.String,
			VisitCount:    int(visitCount.Int64),
			IsEducational: classify.IsEducationalDomain(url),
		}
		if lastVisit.Valid {
			rec.LastVisitTime = toISO(lastVisit.Int64)
		}
		if classify.IsSearchURL(url) {
			rec.SearchQuery = classify.ExtractSearchQuery(url)
		}

		table.Records = append(table.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return table, nil
}
