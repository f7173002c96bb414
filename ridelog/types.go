package ridelog

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/ridelog-filter/schema"
	"github.com/theoremus-urban-solutions/ridelog-filter/temporal"
)

// Record is one retained row of the working table. Raw keeps the original
// cells aligned with the table's columns so unrecognized columns survive to
// output untouched.
type Record struct {
	Index int
	Raw   []string

	Driver      string
	Date        time.Time
	Start       time.Time
	End         time.Time
	Pickup      string
	Destination string

	// Datetime is the optional free-standing timestamp column. It never
	// decides row validity; nil when the column is absent or the cell did
	// not parse.
	Datetime *time.Time

	HoursWorked float64
	Geocoded    string
	DistanceKM  *float64
	Fare        *float64
}

// StartAt returns the ride start as a wall-clock timestamp on Date.
func (r *Record) StartAt() time.Time { return temporal.Combine(r.Date, r.Start) }

// EndAt returns the ride end as a wall-clock timestamp on Date.
func (r *Record) EndAt() time.Time { return temporal.Combine(r.Date, r.End) }

// Directive is one externally supplied filter instruction keyed by a target
// date: an off-day marker, or a break interval on that date.
type Directive struct {
	Date       time.Time
	OffDay     bool
	BreakStart time.Time
	BreakEnd   time.Time
}

// HasBreak reports whether the directive carries a break interval.
func (d Directive) HasBreak() bool { return !d.BreakStart.IsZero() || !d.BreakEnd.IsZero() }

// Table is the working table of one request: column identities, the reverse
// header lookup, and the retained records. It is exclusively owned by the
// request that built it.
type Table struct {
	Mapping schema.Mapping
	Records []Record
}

// NewTable parses the raw data rows of a normalized sheet into records,
// dropping every row whose essential fields did not parse. It returns
// NoValidDataError when nothing survives.
func NewTable(m schema.Mapping, rows [][]string) (*Table, error) {
	driverIdx := m.Index(schema.FieldDriverName)
	startIdx := m.Index(schema.FieldRideStart)
	endIdx := m.Index(schema.FieldRideEnd)
	dateIdx := m.Index(schema.FieldDate)
	pickupIdx := m.Index(schema.FieldPickupLocation)
	destIdx := m.Index(schema.FieldDestinationAddress)
	dtIdx := m.Index(schema.FieldDatetime)

	starts, startOK := temporal.ParseColumn(column(rows, startIdx))
	ends, endOK := temporal.ParseColumn(column(rows, endIdx))
	dates, dateOK := temporal.ParseDateColumn(column(rows, dateIdx))

	var dts []time.Time
	var dtOK []bool
	if dtIdx >= 0 {
		dts, dtOK = temporal.ParseColumn(column(rows, dtIdx))
	}

	t := &Table{Mapping: m}
	for i, row := range rows {
		driver := cell(row, driverIdx)
		if strings.TrimSpace(driver) == "" || !startOK[i] || !endOK[i] || !dateOK[i] {
			continue
		}
		raw := make([]string, len(m.Fields))
		copy(raw, row)
		var dt *time.Time
		if dtIdx >= 0 && dtOK[i] {
			v := dts[i]
			dt = &v
		}
		t.Records = append(t.Records, Record{
			Index:       i,
			Raw:         raw,
			Driver:      driver,
			Date:        dates[i],
			Start:       starts[i],
			End:         ends[i],
			Pickup:      cell(row, pickupIdx),
			Destination: cell(row, destIdx),
			Datetime:    dt,
		})
	}
	if len(t.Records) == 0 {
		return nil, &NoValidDataError{}
	}
	return t, nil
}

func column(rows [][]string, idx int) []string {
	out := make([]string, len(rows))
	if idx < 0 {
		return out
	}
	for i, row := range rows {
		out[i] = cell(row, idx)
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
