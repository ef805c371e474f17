package health_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/features/health"
	snapshotstore "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/store/snapshots"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/testutil"
	"go.uber.org/zap"
)

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Snapshot *struct {
		Timestamp     string `json:"timestamp"`
		Organisations int    `json:"organisations"`
	} `json:"snapshot"`
}

func serve(t *testing.T, h *health.Handler) response {
	t.Helper()
	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()

	health.Routes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var resp response
	rec.DecodeJSON(t, &resp)
	return resp
}

func TestServe_DatabaseConnected_NoSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), snapshotstore.New(db), zap.NewNop())

	resp := serve(t, handler)
	if resp.Status != "ok" {
		t.Errorf("status: got %q, want %q", resp.Status, "ok")
	}
	if resp.Database != "connected" {
		t.Errorf("database: got %q, want %q", resp.Database, "connected")
	}
	if resp.Snapshot != nil {
		t.Errorf("expected no snapshot, got %+v", resp.Snapshot)
	}
}

func TestServe_ReportsLatestSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fetched := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	doc := fx.InsertSnapshot(ctx, testutil.Snapshot(), fetched)

	handler := health.NewHandler(db.Client(), snapshotstore.New(db), zap.NewNop())
	resp := serve(t, handler)

	if resp.Snapshot == nil {
		t.Fatal("expected snapshot info")
	}
	if resp.Snapshot.Timestamp != doc.Timestamp {
		t.Errorf("timestamp: got %q, want %q", resp.Snapshot.Timestamp, doc.Timestamp)
	}
	if resp.Snapshot.Organisations != 2 {
		t.Errorf("organisations: got %d, want 2", resp.Snapshot.Organisations)
	}
}

func TestServe_Head(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), snapshotstore.New(db), zap.NewNop())

	rec := testutil.NewRecorder()
	health.Routes(handler).ServeHTTP(rec, testutil.NewRequest(http.MethodHead, "/"))
	rec.AssertStatus(t, http.StatusOK)
}
