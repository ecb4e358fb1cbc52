package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/models/store"
	"github.com/cp-tools/casino-atlas/pkg/services/bonus"
	"github.com/cp-tools/casino-atlas/pkg/services/community"
	"github.com/cp-tools/casino-atlas/pkg/services/ingest"
	"github.com/cp-tools/casino-atlas/pkg/services/vip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Offers(ctx context.Context) ([]domain.BonusOffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BonusOffer), args.Error(1)
}

func (m *mockCatalog) Roster(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) ReplaceAll(ctx context.Context, rows []store.ActivityRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *mockSink) GetAll(ctx context.Context) ([]store.ActivityRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ActivityRow), args.Error(1)
}

const uploadCSV = `Fecha,Hora,Depositar,Del usuario,Al usuario
01/06/2024,14:10:00,5000,Fenix_Wagger50,ana
01/06/2024,15:00:00,300,Fenix_Cajero1,ana
02/06/2024,21:30:00,800,Wagger_Luis,bob
`

func newTestController(catalog CatalogLoader, sink ActivitySink) Service {
	evaluator := bonus.NewEvaluator(community.NewClassifier(community.DefaultMarkers()))
	return NewController(catalog, evaluator, sink, vip.DefaultThresholds(), 10)
}

func TestControllerRun(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	offers := []domain.BonusOffer{{
		Date:        "01/06/2024",
		Community:   "Fenix",
		StartHour:   12,
		EndHour:     18,
		Kind:        domain.OfferStandard,
		BaseMin:     decimal.NewFromInt(1000),
		BasePercent: "20",
	}}

	t.Run("full pass produces report and persists summaries", func(t *testing.T) {
		catalog := new(mockCatalog)
		sink := new(mockSink)
		catalog.On("Offers", ctx).Return(offers, nil)
		catalog.On("Roster", ctx).Return([]string{"ana", "carla"}, nil)
		sink.On("ReplaceAll", ctx, mock.AnythingOfType("[]store.ActivityRow")).Return(nil)

		svc := newTestController(catalog, sink)
		result, err := svc.Run(ctx, RunInput{Source: strings.NewReader(uploadCSV), Now: now})
		require.NoError(t, err)

		// ana, bob, plus a synthesized zero row for carla.
		require.Len(t, result.Summaries, 3)

		byPlayer := map[string]domain.PlayerSummary{}
		for _, s := range result.Summaries {
			byPlayer[s.Player] = s
		}

		ana := byPlayer["ana"]
		assert.True(t, ana.TotalAmount.Equal(decimal.NewFromInt(5300)))
		assert.Equal(t, 2, ana.DepositCount)
		assert.Equal(t, "20 (Fenix)", ana.BonusLabel)
		assert.Equal(t, 9, ana.DaysInactive)

		carla := byPlayer["carla"]
		assert.True(t, carla.TotalAmount.IsZero())
		assert.Equal(t, domain.NoBonus, carla.BonusLabel)

		assert.Equal(t, "01/06/2024", result.Report.Period.Start.Format(domain.DateLayout))
		assert.Equal(t, "02/06/2024", result.Report.Period.End.Format(domain.DateLayout))
		require.NotEmpty(t, result.Report.Sections)
		assert.Equal(t, "Top 10 Depositors by Amount", result.Report.Sections[0].Title)

		sink.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("unavailable catalog aborts the run", func(t *testing.T) {
		catalog := new(mockCatalog)
		sink := new(mockSink)
		catalog.On("Offers", ctx).Return(nil, assert.AnError)

		svc := newTestController(catalog, sink)
		_, err := svc.Run(ctx, RunInput{Source: strings.NewReader(uploadCSV), Now: now})
		require.Error(t, err)
		sink.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})

	t.Run("schema mismatch aborts the run", func(t *testing.T) {
		catalog := new(mockCatalog)
		sink := new(mockSink)

		svc := newTestController(catalog, sink)
		bad := "a,b,c\n1,2,3\n"
		_, err := svc.Run(ctx, RunInput{Source: strings.NewReader(bad), Now: now})

		var mismatch *ingest.SchemaMismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}

func TestControllerVIPQueries(t *testing.T) {
	ctx := context.Background()

	last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []store.ActivityRow{
		{Player: "ana", TotalAmount: 500, DepositCount: 1, LastActivity: &last, DaysInactive: 40, Tier: "regular"},
		{Player: "bob", TotalAmount: 15000, DepositCount: 2, LastActivity: &last, DaysInactive: 2, Tier: "regular"},
	}

	catalog := new(mockCatalog)
	sink := new(mockSink)
	catalog.On("Roster", ctx).Return([]string{"ana"}, nil)
	sink.On("GetAll", ctx).Return(rows, nil)

	svc := newTestController(catalog, sink)

	t.Run("inactive roster members", func(t *testing.T) {
		got, err := svc.InactiveVIPs(ctx, 30)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ana", got[0].Player)
	})

	t.Run("candidates outside the roster", func(t *testing.T) {
		got, err := svc.VIPCandidates(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "bob", got[0].Player)
	})
}
