package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used across input files and the
// offer catalog. Offer matching compares the formatted string verbatim.
const DateLayout = "02/01/2006"

type TxKind string

const (
	KindDeposit    TxKind = "deposit"
	KindWithdrawal TxKind = "withdrawal"
	KindOther      TxKind = "other"
)

// Transaction is one canonical row produced by the schema normalizer.
// It is immutable once parsed; corrections require re-ingesting the file.
type Transaction struct {
	ID     string
	Kind   TxKind
	Amount decimal.Decimal
	Date   time.Time // calendar day, midnight
	Hour   int
	Minute int
	Second int
	// SourceUser is the counterpart account the funds came through.
	// Community resolution pattern-matches on this field.
	SourceUser string
	Player     string
	Platform   string
	// Extra holds unmapped input columns. Preserved, never read downstream.
	Extra map[string]string
}

func (t Transaction) DateKey() string {
	return t.Date.Format(DateLayout)
}

// Before reports whether t happened earlier in the day than other.
// Only meaningful for transactions sharing the same calendar date.
func (t Transaction) Before(other Transaction) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	if t.Minute != other.Minute {
		return t.Minute < other.Minute
	}
	return t.Second < other.Second
}
