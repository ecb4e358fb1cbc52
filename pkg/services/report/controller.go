package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/adapters"
	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/models/store"
	"github.com/cp-tools/casino-atlas/pkg/services/aggregate"
	"github.com/cp-tools/casino-atlas/pkg/services/bonus"
	"github.com/cp-tools/casino-atlas/pkg/services/ingest"
	"github.com/cp-tools/casino-atlas/pkg/services/vip"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CatalogLoader supplies the immutable per-run snapshots of the offer
// catalog and the VIP roster.
type CatalogLoader interface {
	Offers(ctx context.Context) ([]domain.BonusOffer, error)
	Roster(ctx context.Context) ([]string, error)
}

// ActivitySink persists a run's summaries, replacing prior content
// wholesale.
type ActivitySink interface {
	ReplaceAll(ctx context.Context, rows []store.ActivityRow) error
	GetAll(ctx context.Context) ([]store.ActivityRow, error)
}

// Service runs the full report pipeline and answers VIP queries against
// the last persisted run.
type Service interface {
	Run(ctx context.Context, input RunInput) (*RunResult, error)
	DailyActivity(ctx context.Context) ([]domain.PlayerSummary, error)
	InactiveVIPs(ctx context.Context, days int) ([]domain.PlayerSummary, error)
	VIPCandidates(ctx context.Context) ([]domain.PlayerSummary, error)
}

type RunInput struct {
	// Source is the uploaded tabular report file.
	Source io.Reader
	// Now anchors inactivity ages. Zero means time.Now().
	Now time.Time
}

type RunResult struct {
	Report    *domain.Report
	Summaries []domain.PlayerSummary
}

type controller struct {
	catalog    CatalogLoader
	evaluator  *bonus.Evaluator
	sink       ActivitySink
	thresholds vip.Thresholds
	topCount   int
}

func NewController(
	catalog CatalogLoader,
	evaluator *bonus.Evaluator,
	sink ActivitySink,
	thresholds vip.Thresholds,
	topCount int,
) Service {
	if topCount <= 0 {
		topCount = 10
	}
	return &controller{
		catalog:    catalog,
		evaluator:  evaluator,
		sink:       sink,
		thresholds: thresholds,
		topCount:   topCount,
	}
}

// Run performs one synchronous pass: normalize, evaluate every
// transaction, aggregate, classify, persist, render. External snapshots
// are loaded once up front; a missing catalog or roster aborts the run.
func (c *controller) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	logger := zerolog.Ctx(ctx)

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	table, err := ingest.ReadCSV(input.Source)
	if err != nil {
		return nil, err
	}

	normalizer := ingest.DetectNormalizer(table)
	txs, err := normalizer.Normalize(ctx, table)
	if err != nil {
		return nil, err
	}

	offers, err := c.catalog.Offers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offer catalog: %w", err)
	}
	roster, err := c.catalog.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	participations := c.evaluator.EvaluateAll(ctx, txs, offers)

	summaries := aggregate.Aggregate(ctx, txs, participations, aggregate.Options{
		Roster: roster,
		Now:    now,
	})
	summaries = vip.ClassifyAll(summaries, c.thresholds)

	rows := make([]store.ActivityRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, adapters.MapSummaryDomainToStore(s))
	}
	if err := c.sink.ReplaceAll(ctx, rows); err != nil {
		return nil, fmt.Errorf("persist daily activity: %w", err)
	}

	logger.Info().
		Int("transactions", len(txs)).
		Int("players", len(summaries)).
		Int("offers", len(offers)).
		Msg("report run complete")

	return &RunResult{
		Report:    c.buildReport(txs, summaries, roster),
		Summaries: summaries,
	}, nil
}

func (c *controller) DailyActivity(ctx context.Context) ([]domain.PlayerSummary, error) {
	rows, err := c.sink.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load daily activity: %w", err)
	}
	summaries := make([]domain.PlayerSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, adapters.MapActivityStoreToDomain(r))
	}
	return summaries, nil
}

func (c *controller) InactiveVIPs(ctx context.Context, days int) ([]domain.PlayerSummary, error) {
	summaries, err := c.DailyActivity(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := c.catalog.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return vip.Inactive(summaries, roster, days), nil
}

func (c *controller) VIPCandidates(ctx context.Context) ([]domain.PlayerSummary, error) {
	summaries, err := c.DailyActivity(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := c.catalog.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return vip.Candidates(summaries, roster, c.thresholds), nil
}

func (c *controller) buildReport(
	txs []domain.Transaction,
	summaries []domain.PlayerSummary,
	roster []string,
) *domain.Report {
	report := &domain.Report{
		Title:    "Casino Deposit Report",
		Period:   period(txs),
		Currency: "ARS",
	}

	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.TotalAmount)
	}
	report.TotalDeposits = total

	report.Sections = append(report.Sections,
		topAmountSection(summaries, c.topCount),
		topCountSection(summaries, c.topCount),
		tierSection(summaries),
		bandSection(summaries),
		candidateSection(summaries, roster, c.thresholds),
	)

	return report
}

func period(txs []domain.Transaction) domain.TimePeriod {
	if len(txs) == 0 {
		return domain.TimePeriod{}
	}
	start, end := txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(start) {
			start = tx.Date
		}
		if tx.Date.After(end) {
			end = tx.Date
		}
	}
	return domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}

func topAmountSection(summaries []domain.PlayerSummary, n int) domain.ReportSection {
	section := domain.ReportSection{Title: fmt.Sprintf("Top %d Depositors by Amount", n)}
	for _, s := range aggregate.TopByAmount(summaries, n) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.Player,
			Value:       s.TotalAmount.StringFixed(2),
			Description: fmt.Sprintf("%d deposits, community %s", s.DepositCount, s.Community.Name),
		})
	}
	return section
}

func topCountSection(summaries []domain.PlayerSummary, n int) domain.ReportSection {
	section := domain.ReportSection{Title: fmt.Sprintf("Top %d Depositors by Count", n)}
	for _, s := range aggregate.TopByCount(summaries, n) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.Player,
			Value:       s.DepositCount,
			Unit:        "deposits",
			Description: fmt.Sprintf("total %s", s.TotalAmount.StringFixed(2)),
		})
	}
	return section
}

func tierSection(summaries []domain.PlayerSummary) domain.ReportSection {
	counts := map[string]interface{}{}
	for _, s := range summaries {
		key := string(s.Tier)
		if n, ok := counts[key].(int); ok {
			counts[key] = n + 1
		} else {
			counts[key] = 1
		}
	}
	return domain.ReportSection{Title: "VIP Tiers", Summary: counts}
}

func bandSection(summaries []domain.PlayerSummary) domain.ReportSection {
	section := domain.ReportSection{Title: "Time-of-Day Segmentation"}
	for _, s := range summaries {
		if !s.HasActivity {
			continue
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.Player,
			Value:       s.DominantBand.String(),
			Description: fmt.Sprintf("peak hour %02d:00", s.PeakHour),
		})
	}
	return section
}

func candidateSection(summaries []domain.PlayerSummary, roster []string, th vip.Thresholds) domain.ReportSection {
	section := domain.ReportSection{Title: "VIP Candidates"}
	for _, s := range vip.Candidates(summaries, roster, th) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.Player,
			Value:       s.TotalAmount.StringFixed(2),
			Description: fmt.Sprintf("%d deposits, not on roster", s.DepositCount),
		})
	}
	return section
}
