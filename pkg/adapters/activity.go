package adapters

import (
	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/models/store"
	"github.com/shopspring/decimal"
)

func MapSummaryDomainToStore(s domain.PlayerSummary) store.ActivityRow {
	row := store.ActivityRow{
		Player:       s.Player,
		Community:    s.Community.Name,
		TotalAmount:  s.TotalAmount.InexactFloat64(),
		DepositCount: s.DepositCount,
		DaysInactive: s.DaysInactive,
		DominantBand: s.DominantBand.String(),
		PeakHour:     s.PeakHour,
		BonusLabel:   s.BonusLabel,
		Tier:         string(s.Tier),
	}
	if s.HasActivity {
		last := s.LastActivity
		row.LastActivity = &last
	}
	return row
}

func MapActivityStoreToDomain(r store.ActivityRow) domain.PlayerSummary {
	s := domain.PlayerSummary{
		Player:       r.Player,
		Community:    domain.Community{Name: r.Community, Known: r.Community != domain.UnknownCommunityName && r.Community != ""},
		TotalAmount:  decimal.NewFromFloat(r.TotalAmount),
		DepositCount: r.DepositCount,
		DaysInactive: r.DaysInactive,
		DominantBand: bandFromString(r.DominantBand),
		PeakHour:     r.PeakHour,
		BonusLabel:   r.BonusLabel,
		Tier:         domain.Tier(r.Tier),
	}
	if r.LastActivity != nil {
		s.LastActivity = *r.LastActivity
		s.HasActivity = true
	}
	return s
}

func bandFromString(raw string) domain.TimeBand {
	for _, b := range []domain.TimeBand{
		domain.BandNightEarly,
		domain.BandMorning,
		domain.BandAfternoon,
		domain.BandEvening,
	} {
		if b.String() == raw {
			return b
		}
	}
	return domain.BandNightEarly
}
