package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.uber.org/zap"
)

type fakeSource struct {
	payload []byte
	err     error
}

func (f fakeSource) Fetch(ctx context.Context) ([]byte, error) { return f.payload, f.err }
func (f fakeSource) Name() string                              { return "fake" }

type fakeStore struct {
	mu       sync.Mutex
	appended []models.Snapshot
	raws     [][]byte
	pruned   []int
}

func (f *fakeStore) Append(ctx context.Context, source string, snap models.Snapshot, raw []byte, fetchedAt time.Time) (models.StoredSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, snap)
	f.raws = append(f.raws, raw)
	return models.StoredSnapshot{RunID: "run", Source: source, Organisations: snap, RawSize: len(raw)}, nil
}

func (f *fakeStore) Prune(ctx context.Context, keep int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruned = append(f.pruned, keep)
	return 1, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

const payload = `[{"organisation": "Utrecht", "sample_size": 60, "country": "NL"}]`

func TestSnapshotRefresh_RefreshOnce(t *testing.T) {
	store := &fakeStore{}
	w := NewSnapshotRefresh(fakeSource{payload: []byte(payload)}, store, zap.NewNop(), time.Hour, 5)

	doc, err := w.RefreshOnce(context.Background())
	if err != nil {
		t.Fatalf("RefreshOnce failed: %v", err)
	}
	if doc.Source != "fake" {
		t.Errorf("source: got %q", doc.Source)
	}
	if len(store.appended) != 1 || store.appended[0]["Utrecht"].SampleSize != 60 {
		t.Fatalf("unexpected stored snapshots: %+v", store.appended)
	}
	if string(store.raws[0]) != payload {
		t.Errorf("raw payload not passed through")
	}
	if len(store.pruned) != 1 || store.pruned[0] != 5 {
		t.Errorf("expected prune(5), got %v", store.pruned)
	}
}

func TestSnapshotRefresh_NoRetentionSkipsPrune(t *testing.T) {
	store := &fakeStore{}
	w := NewSnapshotRefresh(fakeSource{payload: []byte(payload)}, store, zap.NewNop(), time.Hour, 0)
	if _, err := w.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("RefreshOnce failed: %v", err)
	}
	if len(store.pruned) != 0 {
		t.Errorf("prune should not run without retention, got %v", store.pruned)
	}
}

func TestSnapshotRefresh_FetchError(t *testing.T) {
	store := &fakeStore{}
	boom := errors.New("upstream down")
	w := NewSnapshotRefresh(fakeSource{err: boom}, store, zap.NewNop(), time.Hour, 0)

	_, err := w.RefreshOnce(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if store.count() != 0 {
		t.Errorf("nothing should be stored on fetch error")
	}
}

func TestSnapshotRefresh_NonListPayloadStoresEmptySnapshot(t *testing.T) {
	store := &fakeStore{}
	w := NewSnapshotRefresh(fakeSource{payload: []byte(`{"error": "task failed"}`)}, store, zap.NewNop(), time.Hour, 0)

	if _, err := w.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("RefreshOnce failed: %v", err)
	}
	if store.count() != 1 || len(store.appended[0]) != 0 {
		t.Errorf("expected one empty snapshot, got %+v", store.appended)
	}
}

func TestSnapshotRefresh_StartStop(t *testing.T) {
	store := &fakeStore{}
	w := NewSnapshotRefresh(fakeSource{payload: []byte(payload)}, store, zap.NewNop(), 50*time.Millisecond, 0)

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start should be a no-op: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for store.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if store.count() == 0 {
		t.Fatal("expected at least one scheduled refresh")
	}
}

func TestSnapshotRefresh_StartRejectsZeroInterval(t *testing.T) {
	w := NewSnapshotRefresh(fakeSource{}, &fakeStore{}, zap.NewNop(), 0, 0)
	if err := w.Start(); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
