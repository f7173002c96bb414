// Package xlsx adapts the spreadsheet codec: it reads uploaded workbooks into
// raw header/row slices and writes result tables back with the original
// header text and per-column presentation metadata.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is the raw tabular content of the first worksheet.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Read decodes the first worksheet of an xlsx stream.
func Read(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}
	return &Sheet{Headers: rows[0], Rows: rows[1:]}, nil
}
