package utils

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Overlaps reports whether the half-open ranges [startA, endA) and
// [startB, endB) intersect. Back-to-back stays (endA == startB) do not
// overlap.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// DaysBetween returns the number of whole days in [start, end).
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// DatesBetween returns every calendar date in [start, end).
func DatesBetween(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DatesBetweenInclusive returns every calendar date in [start, end].
func DatesBetweenInclusive(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// MondayWeekday returns the weekday index with Monday = 0 ... Sunday = 6,
// the numbering used by the bulk price change weekday filter.
func MondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
