package dates

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// truncate drops the clock part, keeping the calendar day of t in its own
// location.
func truncate(t time.Time) time.Time {
	return Date(t.Date())
}

// DaysLeft returns the signed number of days from today until deadline, both
// taken at day granularity. Zero means the deadline is today; a negative
// value means it has passed and how long ago.
func DaysLeft(deadline, today time.Time) int {
	diff := truncate(deadline).Sub(truncate(today))
	return int(math.Ceil(float64(diff) / float64(day)))
}

// Expired reports whether deadline lies strictly before today. A deadline of
// today is still open.
func Expired(deadline, today time.Time) bool {
	return truncate(deadline).Before(truncate(today))
}

// FormatLong renders t the Indonesian way, e.g. "5 Februari 2025".
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}
