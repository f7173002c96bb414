// Package schema maps localized spreadsheet headers to canonical field names
// and keeps the reverse lookup needed to restore the original header text on
// output.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical field names used throughout the pipeline.
const (
	FieldDate               = "date"
	FieldDriverName         = "driver_name"
	FieldRideStart          = "ride_start"
	FieldRideEnd            = "ride_end"
	FieldPickupLocation     = "pickup_location"
	FieldDestinationAddress = "destination_address"
	FieldDatetime           = "datetime"
	FieldGeocodedLocation   = "geocoded_location"
	FieldHoursWorked        = "hours_worked"
	FieldDistanceKM         = "distance_km"
	FieldFare               = "fare"
)

// headerMapping translates known localized header names (lowercased,
// trimmed) to canonical field names.
var headerMapping = map[string]string{
	"datum der fahrt":          FieldDate,
	"fahrername":               FieldDriverName,
	"uhrzeit des fahrtbeginns": FieldRideStart,
	"uhrzeit des fahrtendes":   FieldRideEnd,
	"abholort":                 FieldPickupLocation,
	"zieladresse":              FieldDestinationAddress,
	FieldDate:                  FieldDate,
	FieldDriverName:            FieldDriverName,
	FieldRideStart:             FieldRideStart,
	FieldRideEnd:               FieldRideEnd,
	FieldPickupLocation:        FieldPickupLocation,
	FieldDestinationAddress:    FieldDestinationAddress,
	FieldDatetime:              FieldDatetime,
}

// Required lists the canonical fields without which the pipeline cannot run.
var Required = []string{FieldDriverName, FieldRideStart, FieldRideEnd, FieldDate}

// Mapping is the result of normalizing a header row.
type Mapping struct {
	// Fields holds one identity per input column: the canonical field name
	// for recognized headers, the original header text otherwise.
	Fields []string
	// Original maps canonical field names back to the exact header text
	// they were read from. Unmapped columns have no entry.
	Original map[string]string
}

// MissingColumnsError reports required canonical fields absent after mapping.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("file missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Normalize maps a raw header row to canonical field identities. Unrecognized
// headers pass through unchanged in both directions.
func Normalize(headers []string) (Mapping, error) {
	m := Mapping{
		Fields:   make([]string, len(headers)),
		Original: make(map[string]string),
	}
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if canon, ok := headerMapping[key]; ok {
			if _, seen := m.Original[canon]; !seen {
				m.Fields[i] = canon
				m.Original[canon] = h
				continue
			}
		}
		m.Fields[i] = h
	}
	var missing []string
	for _, req := range Required {
		if _, ok := m.Original[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Mapping{}, &MissingColumnsError{Missing: missing}
	}
	return m, nil
}

// Index returns the column position of a canonical field, or -1.
func (m Mapping) Index(field string) int {
	for i, f := range m.Fields {
		if f == field {
			return i
		}
	}
	return -1
}

// HeaderFor returns the output header text for a field: the original header
// when one was recorded, the canonical name otherwise (derived fields).
func (m Mapping) HeaderFor(field string) string {
	if orig, ok := m.Original[field]; ok {
		return orig
	}
	return field
}
