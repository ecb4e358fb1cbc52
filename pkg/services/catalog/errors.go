package catalog

import "fmt"

// SourceUnavailableError is fatal for the run: without a catalog or roster
// snapshot no aggregation proceeds.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// OfferParseError marks a malformed offer row. The offer is skipped and
// evaluation continues with the remaining catalog.
type OfferParseError struct {
	Line  int
	Field string
	Value string
}

func (e *OfferParseError) Error() string {
	return fmt.Sprintf("offer line %d: field %q: cannot parse %q", e.Line, e.Field, e.Value)
}
