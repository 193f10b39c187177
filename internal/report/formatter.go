package report

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DegreeSymbol is appended to every rendered temperature.
	DegreeSymbol = "°C"
	// InvalidDate replaces dates that cannot be parsed.
	InvalidDate = "Invalid date format"

	longDateLayout = "Monday 02 January 2006"
)

// isoLayouts are tried in order. A date-time keeps the calendar date of its own offset.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// DateFormatter renders an ISO-8601 date for display.
type DateFormatter interface {
	FormatDate(iso string) string
}

// LongDate renders dates like "Tuesday 06 July 2021".
type LongDate struct{}

// FormatDate implements DateFormatter.
func (LongDate) FormatDate(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return InvalidDate
	}
	return t.Format(longDateLayout)
}

// FormatDate renders iso as a long-form weekday date, or InvalidDate.
func FormatDate(iso string) string {
	return LongDate{}.FormatDate(iso)
}

// FormatTemperature appends the degree symbol to v without rounding it.
// Whole values keep one decimal place, so 20 renders as "20.0°C".
func FormatTemperature(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsNaN(v) && !math.IsInf(v, 0) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + DegreeSymbol
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
