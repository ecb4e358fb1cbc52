package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// RawTable is an uploaded report file before normalization: a header row
// plus data rows, column meaning still source-specific.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ReadCSV reads a whole tabular file into memory. Rows may have a column
// count different from the header; the normalizer decides what to do with
// them.
func ReadCSV(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read input file: file is empty")
	}

	return &RawTable{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}
