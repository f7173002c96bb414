package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theoremus-urban-solutions/ridelog-filter/ridelog"
	"github.com/theoremus-urban-solutions/ridelog-filter/schema"
)

const sheetName = "Sheet1"

// columnStyle is presentation metadata keyed by canonical column identity.
type columnStyle struct {
	width  float64
	numFmt string
}

var columnStyles = map[string]columnStyle{
	schema.FieldDate:             {width: 15, numFmt: "YYYY-MM-DD"},
	schema.FieldRideStart:        {width: 25, numFmt: "YYYY-MM-DD HH:MM:SS.000"},
	schema.FieldRideEnd:          {width: 25, numFmt: "YYYY-MM-DD HH:MM:SS.000"},
	schema.FieldDatetime:         {width: 25, numFmt: "YYYY-MM-DD HH:MM:SS.000"},
	schema.FieldHoursWorked:      {width: 12, numFmt: "0.00"},
	schema.FieldPickupLocation:   {width: 40, numFmt: "@"},
	schema.FieldGeocodedLocation: {width: 30},
}

const defaultColumnWidth = 20

// Write serializes the result table to an xlsx workbook: original columns in
// input order with their original header text, then the derived columns under
// their canonical names.
func Write(t *ridelog.Table, geo bool) (*bytes.Buffer, error) {
	fields := outputFields(t, geo)

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(fields))
	for i, field := range fields {
		header[i] = t.Mapping.HeaderFor(field)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for rowIdx := range t.Records {
		row := make([]interface{}, len(fields))
		for colIdx, field := range fields {
			row[colIdx] = cellValue(&t.Records[rowIdx], t.Mapping, field, colIdx)
		}
		ref, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, ref, &row); err != nil {
			return nil, err
		}
	}

	if err := applyPresentation(f, fields, len(t.Records)); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// outputFields returns the original column identities plus the derived
// columns not already present in the input.
func outputFields(t *ridelog.Table, geo bool) []string {
	fields := append([]string(nil), t.Mapping.Fields...)
	derived := []string{schema.FieldHoursWorked}
	if geo {
		derived = append(derived, schema.FieldGeocodedLocation, schema.FieldDistanceKM, schema.FieldFare)
	}
	for _, d := range derived {
		if !contains(fields, d) {
			fields = append(fields, d)
		}
	}
	return fields
}

func cellValue(r *ridelog.Record, m schema.Mapping, field string, colIdx int) interface{} {
	switch field {
	case schema.FieldDate:
		return r.Date.Format("2006-01-02")
	case schema.FieldRideStart:
		return r.StartAt().Format("2006-01-02 15:04:05") + ".000"
	case schema.FieldRideEnd:
		return r.EndAt().Format("2006-01-02 15:04:05") + ".000"
	case schema.FieldDatetime:
		if r.Datetime == nil {
			if colIdx < len(r.Raw) {
				return r.Raw[colIdx]
			}
			return ""
		}
		return r.Datetime.Format("2006-01-02 15:04:05") + ".000"
	case schema.FieldDriverName:
		return r.Driver
	case schema.FieldPickupLocation:
		return r.Pickup
	case schema.FieldDestinationAddress:
		return r.Destination
	case schema.FieldHoursWorked:
		return r.HoursWorked
	case schema.FieldGeocodedLocation:
		return r.Geocoded
	case schema.FieldDistanceKM:
		if r.DistanceKM == nil {
			return nil
		}
		return *r.DistanceKM
	case schema.FieldFare:
		if r.Fare == nil {
			return nil
		}
		return *r.Fare
	default:
		if colIdx < len(r.Raw) {
			return r.Raw[colIdx]
		}
		return ""
	}
}

func applyPresentation(f *excelize.File, fields []string, rowCount int) error {
	for i, field := range fields {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		style, ok := columnStyles[field]
		if !ok {
			style = columnStyle{width: defaultColumnWidth}
		}
		if err := f.SetColWidth(sheetName, col, col, style.width); err != nil {
			return err
		}
		if style.numFmt == "" || rowCount == 0 {
			continue
		}
		numFmt := style.numFmt
		styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return err
		}
		top := fmt.Sprintf("%s2", col)
		bottom := fmt.Sprintf("%s%d", col, rowCount+1)
		if err := f.SetCellStyle(sheetName, top, bottom, styleID); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
