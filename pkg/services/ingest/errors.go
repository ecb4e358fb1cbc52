package ingest

import (
	"fmt"
	"strings"
)

// SchemaMismatchError is fatal for the run: the input layout matches no
// known shape. It reports actual vs expected so the user can fix the file.
type SchemaMismatchError struct {
	Expected int
	Actual   int
	Missing  []string // required canonical fields absent from a named header row
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema mismatch: missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("schema mismatch: got %d columns, want %d", e.Actual, e.Expected)
}

// FieldParseError marks a single unparseable field on a row. The row is
// dropped and the run continues.
type FieldParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot parse %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}
