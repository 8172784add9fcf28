package history

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// Header is the canonical column set shared by the exporter and the
// analyzer. It is a wire contract: changing it breaks uploaded files.
var Header = []string{"URL", "Title", "Visit Count", "Last Visit Time", "Search Query", "Is Educational"}

// VisitRecord is the browser-agnostic representation of one history entry.
type VisitRecord struct {
	URL           string
	Title         string
	VisitCount    int
	LastVisitTime string // RFC 3339 UTC, or "" when the raw value did not convert
	SearchQuery   string // "" when the URL is not a search results page
	IsEducational bool
}

// Table is an ordered sequence of visit records, most recent first. The
// order is established by the export query and preserved verbatim.
type Table struct {
	Records []VisitRecord
}

// CSV renders the table in its canonical comma-separated form: the fixed
// header followed by one row per record, booleans as True/False.
func (t *Table) CSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	w.Write(Header) //nolint:errcheck // strings.Builder writes cannot fail
	for _, r := range t.Records {
		edu := "False"
		if r.IsEducational {
			edu = "True"
		}
		w.Write([]string{ //nolint:errcheck
			r.URL,
			r.Title,
			strconv.Itoa(r.VisitCount),
			r.LastVisitTime,
			r.SearchQuery,
			edu,
		})
	}
	w.Flush()
	return sb.String()
}
