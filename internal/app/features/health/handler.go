// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	snapshotstore "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/store/snapshots"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/timeouts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// LatestSnapshot reports the newest stored snapshot.
type LatestSnapshot interface {
	Latest(ctx context.Context) (models.StoredSnapshot, error)
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client    *mongo.Client
	Snapshots LatestSnapshot
	Log       *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the snapshot
// store and logger.
func NewHandler(client *mongo.Client, snapshots LatestSnapshot, logger *zap.Logger) *Handler {
	return &Handler{
		Client:    client,
		Snapshots: snapshots,
		Log:       logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string        `json:"status"`
	Database string        `json:"database"`
	Message  string        `json:"message,omitempty"`
	Error    string        `json:"error,omitempty"`
	Snapshot *snapshotInfo `json:"snapshot,omitempty"`
}

// snapshotInfo describes the data currently shown on the dashboard.
type snapshotInfo struct {
	Timestamp     string    `json:"timestamp"`
	FetchedAt     time.Time `json:"fetched_at"`
	Organisations int       `json:"organisations"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "snapshot":{"timestamp":"…","fetched_at":"…","organisations":3} }
//
// "snapshot" is omitted until the first refresh has stored one.
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Informational only; a missing snapshot does not fail the check.
	if h.Snapshots != nil {
		lookupCtx, lookupCancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer lookupCancel()
		latest, err := h.Snapshots.Latest(lookupCtx)
		switch {
		case err == nil:
			resp.Snapshot = &snapshotInfo{
				Timestamp:     latest.Timestamp,
				FetchedAt:     latest.FetchedAt,
				Organisations: len(latest.Organisations),
			}
		case !errors.Is(err, snapshotstore.ErrNotFound):
			h.Log.Warn("health-check: latest snapshot lookup failed", zap.Error(err))
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
