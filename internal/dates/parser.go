// Package dates parses the loosely formatted Indonesian date text found in
// listings and does day-granularity arithmetic against an explicit "today".
package dates

import (
	"strconv"
	"strings"
	"time"
)

// rangeDelimiter separates start and end in "10 Jan 2025 - 05 Feb 2025".
const rangeDelimiter = " - "

// monthAbbrev maps the first three letters of an Indonesian month name.
var monthAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"mei": time.May,
	"jun": time.June,
	"jul": time.July,
	"agu": time.August,
	"sep": time.September,
	"okt": time.October,
	"nov": time.November,
	"des": time.December,
}

// Date returns the civil date y-m-d as midnight UTC. All parsed dates and
// reference dates in this package use that representation so they compare
// by calendar day only.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar day of now as observed in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return Date(y, m, d)
}

// ParseRangeEnd parses "D MMM YYYY" or "D MMM YYYY - D MMM YYYY" and returns
// the last day of the range. ok is false for anything it cannot read.
func ParseRangeEnd(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	segment := text
	if parts := strings.Split(text, rangeDelimiter); len(parts) > 1 {
		segment = parts[1]
	}

	tokens := strings.Fields(segment)
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(tokens[0])
	if err != nil {
		return time.Time{}, false
	}
	monthKey := strings.ToLower(tokens[1])
	if len(monthKey) > 3 {
		monthKey = monthKey[:3]
	}
	month, ok := monthAbbrev[monthKey]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return time.Time{}, false
	}

	t := Date(year, month, day)
	// Reject days that time.Date would roll into the next month.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// ParseDeadline reads a scholarship deadline column. It accepts an ISO date
// or timestamp first, then falls back to the Indonesian text format.
func ParseDeadline(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return Date(t.Date()), true
	}
	if len(text) >= len("2006-01-02") {
		if t, err := time.Parse("2006-01-02", text[:len("2006-01-02")]); err == nil {
			return Date(t.Date()), true
		}
	}

	return ParseRangeEnd(text)
}
