package vip

import (
	"strings"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Thresholds contains the configurable cut-offs for tier assignment and
// candidate detection.
type Thresholds struct {
	// EliteAmount and EliteCount must both be exceeded for the highest tier.
	EliteAmount decimal.Decimal
	EliteCount  int
	// HighAmount is the mid-high tier cut-off.
	HighAmount decimal.Decimal
	// MidAmount is the mid tier cut-off.
	MidAmount decimal.Decimal
	// CandidateAmount or CandidateCount flags a non-roster player as a VIP
	// candidate; either alone is enough.
	CandidateAmount decimal.Decimal
	CandidateCount  int
}

// DefaultThresholds returns the operating defaults for tier assignment.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EliteAmount:     decimal.NewFromInt(100000),
		EliteCount:      15,
		HighAmount:      decimal.NewFromInt(50000),
		MidAmount:       decimal.NewFromInt(20000),
		CandidateAmount: decimal.NewFromInt(10000),
		CandidateCount:  5,
	}
}

// Classify assigns a tier from aggregated totals. Cut-offs are strict:
// a total exactly at a threshold stays in the lower tier.
func Classify(s domain.PlayerSummary, t Thresholds) domain.Tier {
	switch {
	case s.TotalAmount.GreaterThan(t.EliteAmount) && s.DepositCount > t.EliteCount:
		return domain.TierElite
	case s.TotalAmount.GreaterThan(t.HighAmount):
		return domain.TierHigh
	case s.TotalAmount.GreaterThan(t.MidAmount):
		return domain.TierMid
	default:
		return domain.TierRegular
	}
}

// ClassifyAll returns the summaries with tiers filled in.
func ClassifyAll(summaries []domain.PlayerSummary, t Thresholds) []domain.PlayerSummary {
	out := make([]domain.PlayerSummary, len(summaries))
	for i, s := range summaries {
		s.Tier = Classify(s, t)
		out[i] = s
	}
	return out
}

// Candidates surfaces non-roster players whose volume or frequency
// suggests VIP treatment, regardless of tier.
func Candidates(summaries []domain.PlayerSummary, roster []string, t Thresholds) []domain.PlayerSummary {
	members := rosterSet(roster)
	var out []domain.PlayerSummary
	for _, s := range summaries {
		if members[playerKey(s.Player)] {
			continue
		}
		if s.TotalAmount.GreaterThan(t.CandidateAmount) || s.DepositCount >= t.CandidateCount {
			out = append(out, s)
		}
	}
	return out
}

// Inactive returns roster members whose days since last activity meet the
// threshold. Members with no recorded activity at all are always included.
func Inactive(summaries []domain.PlayerSummary, roster []string, days int) []domain.PlayerSummary {
	members := rosterSet(roster)
	var out []domain.PlayerSummary
	for _, s := range summaries {
		if !members[playerKey(s.Player)] {
			continue
		}
		if !s.HasActivity || s.DaysInactive >= days {
			out = append(out, s)
		}
	}
	return out
}

func rosterSet(roster []string) map[string]bool {
	set := make(map[string]bool, len(roster))
	for _, name := range roster {
		set[playerKey(name)] = true
	}
	return set
}

func playerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
