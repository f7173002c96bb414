package ridelogfilter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/temporal"
	"github.com/theoremus-urban-solutions/ridelog-filter/xlsx"
)

// filterRequest is one decoded submit request: the decoded sheet, the target
// driver, the filter directives, and the enrichment switch.
type filterRequest struct {
	driver     string
	directives []ridelog.Directive
	geo        bool
	sheet      *xlsx.Sheet
}

// directivePayload is one entry of the batch-mode filters field.
type directivePayload struct {
	Date       string `json:"date" validate:"required"`
	OffDay     bool   `json:"off_day"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

// parseFilterRequest decodes a multipart submit request. All shape problems
// come back as ValidationError so the handler answers 400.
func parseFilterRequest(r *http.Request, maxMemory int64, batch bool) (*filterRequest, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, &ridelog.ValidationError{Message: fmt.Sprintf("invalid upload: %v", err)}
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, &ridelog.ValidationError{Message: "missing file field"}
	}
	defer file.Close()
	sheet, err := xlsx.Read(file)
	if err != nil {
		return nil, &ridelog.ValidationError{Message: fmt.Sprintf("unreadable workbook: %v", err)}
	}

	fr := &filterRequest{sheet: sheet}
	fr.driver = strings.TrimSpace(r.FormValue("driver_name"))
	if fr.driver == "" {
		return nil, &ridelog.ValidationError{Message: "missing driver_name field"}
	}

	// Batch mode enriches by default; the single-filter form does not.
	fr.geo = batch
	if v := r.FormValue("geo"); v != "" {
		fr.geo = formBool(v)
	}

	if batch {
		fr.directives, err = parseBatchDirectives(r.FormValue("filters"))
	} else {
		fr.directives, err = parseSingleDirectives(r)
	}
	if err != nil {
		return nil, err
	}
	return fr, nil
}

// parseSingleDirectives handles the single-filter form fields: one optional
// off day and one optional break interval.
func parseSingleDirectives(r *http.Request) ([]ridelog.Directive, error) {
	var ds []ridelog.Directive
	if formBool(r.FormValue("give_off")) {
		raw := r.FormValue("off_date")
		date, err := temporal.ParseDate(raw)
		if err != nil {
			return nil, &ridelog.ValidationError{Message: "invalid off date format, use YYYY-MM-DD"}
		}
		ds = append(ds, ridelog.Directive{Date: date, OffDay: true})
	}
	if formBool(r.FormValue("add_break")) {
		start, err := temporal.ParseTimestamp(r.FormValue("break_start"))
		if err != nil {
			return nil, &ridelog.ValidationError{Message: "invalid break time format, use YYYY-MM-DD HH:MM:SS"}
		}
		end, err := temporal.ParseTimestamp(r.FormValue("break_end"))
		if err != nil {
			return nil, &ridelog.ValidationError{Message: "invalid break time format, use YYYY-MM-DD HH:MM:SS"}
		}
		ds = append(ds, ridelog.Directive{
			Date:       dateOf(start),
			BreakStart: start,
			BreakEnd:   end,
		})
	}
	return ds, nil
}

// parseBatchDirectives decodes the ordered filters JSON array of batch mode.
func parseBatchDirectives(raw string) ([]ridelog.Directive, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ridelog.ValidationError{Message: "missing filters field"}
	}
	var payload []directivePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ridelog.ValidationError{Message: fmt.Sprintf("invalid filters JSON: %v", err)}
	}
	v := validator.New()
	ds := make([]ridelog.Directive, 0, len(payload))
	for i, p := range payload {
		if err := v.Struct(p); err != nil {
			return nil, &ridelog.ValidationError{Message: fmt.Sprintf("filter %d: missing date", i)}
		}
		date, err := temporal.ParseDate(p.Date)
		if err != nil {
			return nil, &ridelog.ValidationError{Message: fmt.Sprintf("filter %d: invalid date, use YYYY-MM-DD", i)}
		}
		d := ridelog.Directive{Date: date, OffDay: p.OffDay}
		if p.BreakStart != "" || p.BreakEnd != "" {
			d.BreakStart, err = temporal.ParseTimestamp(p.BreakStart)
			if err != nil {
				return nil, &ridelog.ValidationError{Message: fmt.Sprintf("filter %d: invalid break_start, use YYYY-MM-DD HH:MM:SS", i)}
			}
			d.BreakEnd, err = temporal.ParseTimestamp(p.BreakEnd)
			if err != nil {
				return nil, &ridelog.ValidationError{Message: fmt.Sprintf("filter %d: invalid break_end, use YYYY-MM-DD HH:MM:SS", i)}
			}
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
