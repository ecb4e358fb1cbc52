package adapters

import (
	"github.com/cp-tools/casino-atlas/pkg/models/api"
	"github.com/cp-tools/casino-atlas/pkg/models/domain"
)

func MapReportDomainToApi(r *domain.Report) api.Report {
	out := api.Report{
		Title: r.Title,
		Period: api.TimePeriod{
			Start:    r.Period.Start,
			End:      r.Period.End,
			Duration: r.Period.Duration,
		},
		Sections:      make([]api.ReportSection, 0, len(r.Sections)),
		TotalDeposits: r.TotalDeposits.StringFixed(2),
		Currency:      r.Currency,
	}

	for _, s := range r.Sections {
		section := api.ReportSection{
			Title:   s.Title,
			Summary: s.Summary,
			Details: make([]api.ReportDetail, 0, len(s.Details)),
		}
		for _, d := range s.Details {
			section.Details = append(section.Details, api.ReportDetail{
				Name:        d.Name,
				Value:       d.Value,
				Unit:        d.Unit,
				Description: d.Description,
			})
		}
		out.Sections = append(out.Sections, section)
	}

	return out
}

func MapSummaryDomainToApi(s domain.PlayerSummary) api.PlayerSummary {
	out := api.PlayerSummary{
		Player:       s.Player,
		Community:    s.Community.Name,
		TotalAmount:  s.TotalAmount.StringFixed(2),
		DepositCount: s.DepositCount,
		DaysInactive: s.DaysInactive,
		DominantBand: s.DominantBand.String(),
		PeakHour:     s.PeakHour,
		BonusLabel:   s.BonusLabel,
		Tier:         string(s.Tier),
	}
	if s.HasActivity {
		last := s.LastActivity
		out.LastActivity = &last
	}
	return out
}

func MapSummariesDomainToApi(summaries []domain.PlayerSummary) []api.PlayerSummary {
	out := make([]api.PlayerSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, MapSummaryDomainToApi(s))
	}
	return out
}
