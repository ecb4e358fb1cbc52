package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	reportsvc "github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReports struct {
	mock.Mock
}

func (m *mockReports) Run(ctx context.Context, input reportsvc.RunInput) (*reportsvc.RunResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportsvc.RunResult), args.Error(1)
}

func (m *mockReports) DailyActivity(ctx context.Context) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func (m *mockReports) InactiveVIPs(ctx context.Context, days int) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func (m *mockReports) VIPCandidates(ctx context.Context) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func newTestAPI(t *testing.T, apiKey string) (*WebAPI, *mockReports) {
	t.Helper()
	reports := new(mockReports)
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	api := NewWebAPI(logger, Config{
		Addr:   "127.0.0.1:0",
		APIKey: apiKey,
		Dependencies: Dependencies{
			Reports: reports,
		},
	})
	return api, reports
}

func TestWebAPI_Routes(t *testing.T) {
	t.Run("rejects requests without the api key", func(t *testing.T) {
		api, reports := newTestAPI(t, "secret")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily", nil)
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		reports.AssertNotCalled(t, "DailyActivity", mock.Anything)
	})

	t.Run("serves daily activity with the api key", func(t *testing.T) {
		api, reports := newTestAPI(t, "secret")
		reports.On("DailyActivity", mock.Anything).Return([]domain.PlayerSummary{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily", nil)
		req.Header.Set("X-Api-Key", "secret")
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		reports.AssertExpectations(t)
	})

	t.Run("skips the key check when none is configured", func(t *testing.T) {
		api, reports := newTestAPI(t, "")
		reports.On("VIPCandidates", mock.Anything).Return([]domain.PlayerSummary{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vip/candidates", nil)
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		reports.AssertExpectations(t)
	})

	t.Run("unknown routes return 404", func(t *testing.T) {
		api, _ := newTestAPI(t, "")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
