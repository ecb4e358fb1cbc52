package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummaries(t *testing.T) {
	summaries := []domain.PlayerSummary{
		{
			Player:       "ana",
			Community:    domain.Community{Name: "Fenix", Known: true},
			TotalAmount:  decimal.NewFromFloat(5300.5),
			DepositCount: 2,
			LastActivity: time.Date(2024, 6, 2, 21, 15, 0, 0, time.UTC),
			HasActivity:  true,
			DaysInactive: 9,
			DominantBand: domain.BandEvening,
			PeakHour:     21,
			BonusLabel:   "20 (Fenix)",
			Tier:         domain.TierRegular,
		},
		{
			Player:     "bob",
			Community:  domain.UnknownCommunity(),
			BonusLabel: domain.NoBonus,
			Tier:       domain.TierRegular,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaries(&buf, summaries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "player,community,total_amount,deposit_count,last_activity,days_inactive,dominant_band,peak_hour,bonus,tier", lines[0])
	assert.Contains(t, lines[1], "ana,Fenix,5300.50,2,02/06/2024 21:15:00,9")
	assert.Contains(t, lines[1], "20 (Fenix)")
	// Players without movements keep an empty last-activity cell.
	assert.Contains(t, lines[2], "bob,OTHER,0.00,0,,0")
}

func TestReporterHandle(t *testing.T) {
	report := &domain.Report{
		Title: "Casino Deposit Report",
		Period: domain.TimePeriod{
			Start:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			Duration: 2,
		},
		TotalDeposits: decimal.NewFromInt(6100),
		Currency:      "ARS",
		Sections: []domain.ReportSection{
			{
				Title:   "VIP Tiers",
				Summary: map[string]interface{}{"regular": 2},
			},
			{
				Title: "Top 10 Depositors by Amount",
				Details: []domain.ReportDetail{
					{Name: "ana", Value: "5300.00", Description: "2 deposits, community Fenix"},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(report))

	out := buf.String()
	assert.Contains(t, out, "Casino Deposit Report (2 days)")
	assert.Contains(t, out, "Period: 01/06/2024 to 02/06/2024")
	assert.Contains(t, out, "Total Deposits: ARS 6100")
	assert.Contains(t, out, "regular: 2")
	assert.Contains(t, out, "ana")
}
