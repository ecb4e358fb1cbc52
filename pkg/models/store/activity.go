package store

import "time"

// ActivityRow is the persisted shape of one player's daily-activity entry.
// The daily_activity table is replaced wholesale on every report run.
type ActivityRow struct {
	Player       string
	Community    string
	TotalAmount  float64
	DepositCount int
	LastActivity *time.Time
	DaysInactive int
	DominantBand string
	PeakHour     int
	BonusLabel   string
	Tier         string
}
