package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
)

var summaryHeader = []string{
	"player",
	"community",
	"total_amount",
	"deposit_count",
	"last_activity",
	"days_inactive",
	"dominant_band",
	"peak_hour",
	"bonus",
	"tier",
}

// WriteSummaries renders per-player summaries as CSV, one row per
// player in the order given.
func WriteSummaries(w io.Writer, summaries []domain.PlayerSummary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range summaries {
		lastActivity := ""
		if s.HasActivity {
			lastActivity = s.LastActivity.Format("02/01/2006 15:04:05")
		}
		record := []string{
			s.Player,
			s.Community.Name,
			s.TotalAmount.StringFixed(2),
			strconv.Itoa(s.DepositCount),
			lastActivity,
			strconv.Itoa(s.DaysInactive),
			s.DominantBand.String(),
			strconv.Itoa(s.PeakHour),
			s.BonusLabel,
			string(s.Tier),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummariesFile writes the CSV export to the given path.
func WriteSummariesFile(path string, summaries []domain.PlayerSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return WriteSummaries(file, summaries)
}
