package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// PeriodDuration maps a lookback period token (5d, 1mo, 3mo, 6mo, 1y, 2y)
// to its duration. Returns (0, false) for unknown tokens.
func PeriodDuration(period string) (time.Duration, bool) {
	const day = 24 * time.Hour
	switch period {
	case "5d":
		return 5 * day, true
	case "1mo":
		return 30 * day, true
	case "3mo":
		return 90 * day, true
	case "6mo":
		return 180 * day, true
	case "1y":
		return 365 * day, true
	case "2y":
		return 730 * day, true
	default:
		return 0, false
	}
}

// IntervalDuration maps a bar interval token (1h, 1d, 1wk) to its duration.
// Returns (0, false) for unknown tokens.
func IntervalDuration(interval string) (time.Duration, bool) {
	switch interval {
	case "1h":
		return time.Hour, true
	case "1d":
		return 24 * time.Hour, true
	case "1wk":
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// PeriodRange resolves a period token to a [from, to] pair ending at now.
// Unknown tokens fall back to 6mo.
func PeriodRange(period string, now time.Time) (time.Time, time.Time) {
	d, ok := PeriodDuration(period)
	if !ok {
		d, _ = PeriodDuration("6mo")
	}
	return now.Add(-d), now
}
