// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/ratelimit"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/summary"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/timeouts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.uber.org/zap"
)

// SnapshotReader loads the most recent snapshots.
type SnapshotReader interface {
	Load(ctx context.Context, limit int) (models.DescriptiveData, error)
}

// Handler serves the dashboard's tiles, charts and tables as JSON.
type Handler struct {
	Snapshots SnapshotReader
	Schema    models.GlobalSchema
	// Text names the population ("AYA").
	Text string
	Log  *zap.Logger

	// RenderLimit throttles the endpoints that compute from a posted frame
	// or render SVG. Nil disables throttling.
	RenderLimit *ratelimit.Limiter
}

// NewHandler constructs a dashboard Handler.
func NewHandler(snapshots SnapshotReader, schema models.GlobalSchema, text string, logger *zap.Logger) *Handler {
	if text == "" {
		text = summary.DefaultPopulationText
	}
	return &Handler{
		Snapshots: snapshots,
		Schema:    schema,
		Text:      text,
		Log:       logger,
	}
}

// latestOnly is enough for every view: only the newest snapshot is shown.
const latestOnly = 1

// load returns the descriptive data, or writes an error response and
// returns ok == false.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.DescriptiveData, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load snapshots")
	defer cancel()

	data, err := h.Snapshots.Load(ctx, latestOnly)
	if err != nil {
		h.Log.Error("load snapshots failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
		return nil, false
	}
	return data, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// noData answers a request for which there is nothing to show yet.
func noData(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ServeSummary handles GET /dashboard/summary.
//
//	{ "countries": {...}, "organisations": {...}, "sample_size": {...} }
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	tiles, ok := summary.All(data, h.Text)
	if !ok {
		noData(w)
		return
	}
	writeJSON(w, http.StatusOK, tiles)
}
