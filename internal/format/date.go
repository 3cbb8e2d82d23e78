package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dmyPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ISO renders t as an ISO-8601 (RFC 3339) datetime string, the storage
// representation for every date in the aggregate document.
func ISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseISO parses a stored ISO-8601 datetime. Legacy documents carry
// millisecond fractions and a Z suffix; both are accepted.
func ParseISO(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DMYToISO converts a dd/mm/yyyy string (1-2 digit day and month, 4
// digit year) to an ISO datetime at local midnight. Returns "" when
// the pattern does not match or the calendar date does not exist,
// e.g. 31/02/2024.
func DMYToISO(s string) string {
	m := dmyPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range components, so an invalid
	// calendar date shows up as a component mismatch.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return ""
	}

	return ISO(t)
}

// ISOToDMY converts an ISO datetime to zero-padded dd/mm/yyyy using
// local calendar fields. Returns "" for unparseable input.
func ISOToDMY(iso string) string {
	t, ok := ParseISO(iso)
	if !ok {
		return ""
	}
	t = t.Local()
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

// AddMonths returns an ISO datetime at local midnight of the same
// day-of-month n months later. When the target month is shorter the
// date rolls over into the following month (Jan 31 + 1 month lands in
// early March), matching historical documents.
func AddMonths(iso string, months int) string {
	t, ok := ParseISO(iso)
	if !ok {
		return ""
	}
	t = t.Local()
	next := time.Date(t.Year(), t.Month()+time.Month(months), t.Day(), 0, 0, 0, 0, time.Local)
	return ISO(next)
}

// DaysUntil returns the number of whole calendar days from today until
// the target date, both taken at local midnight. Negative means the
// date has passed; zero means it is today.
func DaysUntil(iso string) int {
	return DaysUntilFrom(time.Now(), iso)
}

// DaysUntilFrom is DaysUntil with an explicit reference time.
func DaysUntilFrom(now time.Time, iso string) int {
	t, ok := ParseISO(iso)
	if !ok {
		return 0
	}
	target := midnight(t.Local())
	today := midnight(now.Local())
	return int(math.Ceil(target.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
