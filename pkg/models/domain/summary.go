package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeBand is one of the four fixed time-of-day buckets used for
// behavioral segmentation ("franja horaria").
type TimeBand int

const (
	BandNightEarly TimeBand = iota // [0,6)
	BandMorning                    // [6,12)
	BandAfternoon                  // [12,18)
	BandEvening                    // [18,24)
)

func BandForHour(hour int) TimeBand {
	switch {
	case hour < 6:
		return BandNightEarly
	case hour < 12:
		return BandMorning
	case hour < 18:
		return BandAfternoon
	default:
		return BandEvening
	}
}

func (b TimeBand) String() string {
	switch b {
	case BandNightEarly:
		return "night-early"
	case BandMorning:
		return "morning"
	case BandAfternoon:
		return "afternoon"
	case BandEvening:
		return "evening"
	}
	return "unknown"
}

type Tier string

const (
	TierElite   Tier = "elite"
	TierHigh    Tier = "high"
	TierMid     Tier = "mid"
	TierRegular Tier = "regular"
)

// PlayerSummary is the per-player rollup over a full report run.
// Recomputed wholesale every run; downstream stores overwrite prior state.
type PlayerSummary struct {
	Player    string
	Community Community

	TotalAmount  decimal.Decimal
	DepositCount int
	// PlatformTotals keeps per-source subtotals; TotalAmount is their sum.
	PlatformTotals map[string]decimal.Decimal

	LastActivity time.Time
	HasActivity  bool
	// DaysInactive is derived against the run's current time, never stored
	// as an input fact.
	DaysInactive int

	DominantBand TimeBand
	PeakHour     int

	BonusLabel string
	Tier       Tier
}
