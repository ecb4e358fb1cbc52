package domain

import "github.com/shopspring/decimal"

type OfferKind string

const (
	// OfferStandard applies to any qualifying deposit within the window.
	OfferStandard OfferKind = "standard"
	// OfferFirstDeposit applies only to a player's chronologically first
	// deposit of the calendar day.
	OfferFirstDeposit OfferKind = "first_deposit"
)

// BonusOffer is one row of the offer catalog, loaded once per report run
// and read-only during evaluation. Catalog file order is significant:
// when several offers qualify for the same transaction the last one
// evaluated wins.
type BonusOffer struct {
	Date      string // dd/mm/yyyy, matched verbatim against Transaction.DateKey
	Community string
	StartHour int
	EndHour   int // inclusive
	Kind      OfferKind

	BaseMin     decimal.Decimal
	BasePercent string

	EnhancedMin     decimal.Decimal
	EnhancedPercent string
	HasEnhanced     bool
}
