package ridelog

import (
	"fmt"
	"strings"
)

// NoValidDataError means no row survived temporal parsing.
type NoValidDataError struct{}

func (e *NoValidDataError) Error() string {
	return "no valid data after parsing datetimes; ensure driver name, date, " +
		"ride start and ride end use supported formats (e.g. YYYY-MM-DD for dates, HH:MM:SS.FFF for times)"
}

// NotFoundError means a filter stage emptied the row set. Known carries the
// distinct driver names seen in the file, for diagnostics.
type NotFoundError struct {
	Driver      string
	Known       []string
	AfterFilter bool
}

func (e *NotFoundError) Error() string {
	if e.AfterFilter {
		return fmt.Sprintf("no data remains for driver %q after filtering; check off dates and break times against the ride dates", e.Driver)
	}
	return fmt.Sprintf("no data found for driver %q; check spelling, case, whitespace or special characters; available drivers: %s",
		e.Driver, strings.Join(e.Known, ", "))
}

// ValidationError means a filter directive was malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
