package report

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cp-tools/casino-atlas/pkg/models/api"
	"github.com/cp-tools/casino-atlas/pkg/models/domain"
	"github.com/cp-tools/casino-atlas/pkg/services/ingest"
	reportsvc "github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Run(ctx context.Context, input reportsvc.RunInput) (*reportsvc.RunResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportsvc.RunResult), args.Error(1)
}

func (m *mockService) DailyActivity(ctx context.Context) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func (m *mockService) InactiveVIPs(ctx context.Context, days int) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func (m *mockService) VIPCandidates(ctx context.Context) ([]domain.PlayerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerSummary), args.Error(1)
}

func multipartUpload(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "report.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func sampleResult() *reportsvc.RunResult {
	return &reportsvc.RunResult{
		Report: &domain.Report{
			Title:         "Casino Deposit Report",
			TotalDeposits: decimal.NewFromInt(5300),
			Currency:      "ARS",
		},
		Summaries: []domain.PlayerSummary{{
			Player:       "ana",
			Community:    domain.Community{Name: "Fenix", Known: true},
			TotalAmount:  decimal.NewFromInt(5300),
			DepositCount: 2,
			LastActivity: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			HasActivity:  true,
			BonusLabel:   "20 (Fenix)",
			Tier:         domain.TierRegular,
		}},
	}
}

func TestRunReport(t *testing.T) {
	t.Run("accepts an upload and returns the rendered report", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Run", mock.Anything, mock.AnythingOfType("report.RunInput")).Return(sampleResult(), nil)
		h := NewHandler(svc)

		body, contentType := multipartUpload(t, "report", "Fecha,Hora,Depositar,Al usuario\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.RunReport(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.RunResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Casino Deposit Report", resp.Report.Title)
		require.Len(t, resp.Summaries, 1)
		assert.Equal(t, "5300.00", resp.Summaries[0].TotalAmount)
	})

	t.Run("missing file field is a bad request", func(t *testing.T) {
		svc := new(mockService)
		h := NewHandler(svc)

		body, contentType := multipartUpload(t, "wrong", "data")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.RunReport(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("schema mismatch surfaces expected vs actual counts", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Run", mock.Anything, mock.Anything).
			Return(nil, &ingest.SchemaMismatchError{Expected: 13, Actual: 10})
		h := NewHandler(svc)

		body, contentType := multipartUpload(t, "report", "a,b\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.RunReport(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error, "10")
		assert.Contains(t, resp.Error, "13")
	})
}

func TestInactiveVIPs(t *testing.T) {
	t.Run("parses the day threshold", func(t *testing.T) {
		svc := new(mockService)
		svc.On("InactiveVIPs", mock.Anything, 45).Return([]domain.PlayerSummary{}, nil)
		h := NewHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vip/inactive?days=45", nil)
		rec := httptest.NewRecorder()
		h.InactiveVIPs(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("defaults the threshold when absent", func(t *testing.T) {
		svc := new(mockService)
		svc.On("InactiveVIPs", mock.Anything, defaultInactiveDays).Return([]domain.PlayerSummary{}, nil)
		h := NewHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vip/inactive", nil)
		rec := httptest.NewRecorder()
		h.InactiveVIPs(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a malformed threshold", func(t *testing.T) {
		svc := new(mockService)
		h := NewHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vip/inactive?days=soon", nil)
		rec := httptest.NewRecorder()
		h.InactiveVIPs(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "InactiveVIPs", mock.Anything, mock.Anything)
	})
}

func TestDailyActivity(t *testing.T) {
	svc := new(mockService)
	svc.On("DailyActivity", mock.Anything).Return(sampleResult().Summaries, nil)
	h := NewHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily", nil)
	rec := httptest.NewRecorder()
	h.DailyActivity(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []api.PlayerSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "ana", resp[0].Player)
}
