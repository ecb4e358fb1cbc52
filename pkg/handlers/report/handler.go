package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cp-tools/casino-atlas/pkg/adapters"
	"github.com/cp-tools/casino-atlas/pkg/models/api"
	"github.com/cp-tools/casino-atlas/pkg/services/catalog"
	"github.com/cp-tools/casino-atlas/pkg/services/ingest"
	reportsvc "github.com/cp-tools/casino-atlas/pkg/services/report"
	"github.com/rs/zerolog"
)

const (
	defaultInactiveDays = 30
	maxUploadBytes      = 32 << 20
)

type Handler struct {
	svc reportsvc.Service
}

func NewHandler(svc reportsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RunReport ingests an uploaded report file, runs the full pipeline, and
// returns the rendered report with per-player summaries.
func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, _, err := r.FormFile("report")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing report file")
		return
	}
	defer file.Close()

	result, err := h.svc.Run(ctx, reportsvc.RunInput{Source: file})
	if err != nil {
		logger.Error().Err(err).Msg("report run failed")
		writeRunError(w, err)
		return
	}

	writeJSON(ctx, w, api.RunResponse{
		Report:    adapters.MapReportDomainToApi(result.Report),
		Summaries: adapters.MapSummariesDomainToApi(result.Summaries),
	})
}

// DailyActivity returns the persisted daily-activity sheet from the last
// run.
func (h *Handler) DailyActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summaries, err := h.svc.DailyActivity(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load daily activity")
		writeError(w, http.StatusInternalServerError, "failed to load daily activity")
		return
	}
	writeJSON(ctx, w, adapters.MapSummariesDomainToApi(summaries))
}

// InactiveVIPs lists roster members whose inactivity meets the day
// threshold from the query string.
func (h *Handler) InactiveVIPs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	days := defaultInactiveDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	summaries, err := h.svc.InactiveVIPs(ctx, days)
	if err != nil {
		logger.Error().Err(err).Int("days", days).Msg("failed to compute inactive VIPs")
		writeRunError(w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapSummariesDomainToApi(summaries))
}

// VIPCandidates lists non-roster players whose volume suggests VIP
// treatment.
func (h *Handler) VIPCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summaries, err := h.svc.VIPCandidates(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute VIP candidates")
		writeRunError(w, err)
		return
	}
	writeJSON(ctx, w, adapters.MapSummariesDomainToApi(summaries))
}

// writeRunError maps pipeline failures onto status codes: structural
// input problems are the client's to fix, missing external sources are a
// dependency failure.
func writeRunError(w http.ResponseWriter, err error) {
	var mismatch *ingest.SchemaMismatchError
	if errors.As(err, &mismatch) {
		writeError(w, http.StatusUnprocessableEntity, mismatch.Error())
		return
	}
	var unavailable *catalog.SourceUnavailableError
	if errors.As(err, &unavailable) {
		writeError(w, http.StatusBadGateway, unavailable.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "report run failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
