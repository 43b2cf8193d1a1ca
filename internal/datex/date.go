// Package datex provides small calendar-date helpers for the check-in and
// daily-reset logic. Check-in state is always compared by the YYYY-MM-DD
// rendering of a timestamp, never by the full instant, so two check-ins at
// 00:01 and 23:59 of the same local day are equal.
package datex

import "time"

// DateLayout is the calendar-date form stored in lastReset and history.
const DateLayout = "2006-01-02"

// Timestamp renders now as the RFC3339 string persisted in the document.
func Timestamp(now time.Time) string {
	return now.Format(time.RFC3339)
}

// Today returns the local calendar date of now.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Yesterday returns the local calendar date one day before now.
func Yesterday(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(DateLayout)
}

// DateOf extracts the calendar-date portion of a stored timestamp.
// Timestamps are persisted in RFC3339, so the date is the first ten
// characters; no timezone normalization is applied beyond what the writer's
// clock produced. Returns "" for strings too short to carry a date.
func DateOf(ts string) string {
	if len(ts) < len(DateLayout) {
		return ""
	}
	return ts[:len(DateLayout)]
}

// SameDay reports whether two timestamps (or dates) fall on the same
// calendar day.
func SameDay(a, b string) bool {
	da, db := DateOf(a), DateOf(b)
	return da != "" && da == db
}
