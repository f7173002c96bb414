// Package temporal parses the heterogeneous date/time strings found in ride
// logs into time values.
//
// Format selection is column-wide: the first pattern that parses at least one
// value in the column is elected for the whole column, and individual cells
// that fail under it become invalid rather than failing the parse.
package temporal

import (
	"log"
	"strings"
	"time"
)

// DateTimeFormats is the priority-ordered pattern list for ride start/end
// columns. Day-first European variants come after the ISO-like ones.
var DateTimeFormats = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05.000000",
	"15:04:05",
	"02.01.2006 15:04:05.000000",
	"02/01/2006 15:04:05.000000",
	"02.01.2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04",
	"02.01.2006 15:04",
	"02/01/2006 15:04",
	"02.01.2006",
	"02/01/2006",
}

// DateFormat is the single fixed pattern for the calendar date column.
const DateFormat = "2006-01-02"

// ParseColumn elects a format for the whole column, then coerces every cell.
// ok[i] is false for cells that did not parse under the elected format (or
// when no format matched any cell at all).
func ParseColumn(values []string) (parsed []time.Time, ok []bool) {
	parsed = make([]time.Time, len(values))
	ok = make([]bool, len(values))
	for _, layout := range DateTimeFormats {
		matched := false
		for i, v := range values {
			t, err := time.Parse(layout, strings.TrimSpace(v))
			if err != nil {
				continue
			}
			parsed[i] = t
			ok[i] = true
			matched = true
		}
		if matched {
			logCoerced(ok, layout)
			return parsed, ok
		}
	}
	if len(values) > 0 {
		log.Printf("no supported datetime format matched any of %d cells", len(values))
	}
	return parsed, ok
}

// logCoerced reports cells that failed under the elected format and were
// coerced to invalid.
func logCoerced(ok []bool, layout string) {
	bad := 0
	for _, v := range ok {
		if !v {
			bad++
		}
	}
	if bad > 0 {
		log.Printf("coerced %d of %d cells to invalid under format %q", bad, len(ok), layout)
	}
}

// ParseDateColumn coerces a column of calendar dates using the fixed
// year-month-day pattern only.
func ParseDateColumn(values []string) (parsed []time.Time, ok []bool) {
	parsed = make([]time.Time, len(values))
	ok = make([]bool, len(values))
	for i, v := range values {
		t, err := time.Parse(DateFormat, strings.TrimSpace(v))
		if err != nil {
			continue
		}
		parsed[i] = t
		ok[i] = true
	}
	logCoerced(ok, DateFormat)
	return parsed, ok
}

// ParseDate parses a single calendar date with the fixed pattern.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(s))
}

// ParseTimestamp parses a single full timestamp (break boundaries). The
// fractional second part is optional.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", strings.TrimSpace(s))
}

// Combine builds a wall-clock timestamp from the calendar date of date and
// the time-of-day of t. It makes time-only inputs comparable with full
// datetimes.
func Combine(date, t time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
