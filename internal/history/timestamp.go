package history

import (
	"math"
	"time"
)

// Microseconds between the Windows epoch (1601-01-01) and the Unix epoch.
const chromiumEpochOffsetMicros = 11644473600000000

// Timestamp conversion failures are per-record and recoverable: both
// converters return "" instead of an error so a single bad row never
// aborts an export.

// ChromiumToISO converts a Chromium timestamp (microseconds since
// 1601-01-01 UTC) to an RFC 3339 UTC string. The zero sentinel and any
// value outside the representable range yield "".
func ChromiumToISO(ts int64) string {
	if ts == 0 {
		return ""
	}
	micros := ts - chromiumEpochOffsetMicros
	return isoFromUnixMicros(micros)
}

// FirefoxToISO converts a Firefox visit timestamp to an RFC 3339 UTC
// string. The unit is inferred by magnitude: values above 1e16 are
// microseconds, above 1e10 milliseconds, otherwise seconds.
func FirefoxToISO(ts int64) string {
	if ts == 0 {
		return ""
	}
	var micros int64
	switch {
	case ts > 10000000000000000:
		micros = ts
	case ts > 10000000000:
		if ts > math.MaxInt64/1000 {
			return ""
		}
		micros = ts * 1000
	default:
		if ts < math.MinInt64/1000000 || ts > math.MaxInt64/1000000 {
			return ""
		}
		micros = ts * 1000000
	}
	return isoFromUnixMicros(micros)
}

// isoFromUnixMicros renders microseconds since the Unix epoch as RFC 3339
// UTC, or "" when the instant falls outside year 1..9999.
func isoFromUnixMicros(micros int64) string {
	t := time.UnixMicro(micros).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return ""
	}
	return t.Format(time.RFC3339)
}
