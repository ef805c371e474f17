// internal/app/system/workers/snapshotrefresh.go
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/descriptives"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/timeouts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultRefreshInterval is used when no interval is configured.
const DefaultRefreshInterval = time.Hour

// SnapshotWriter persists fetched snapshots.
type SnapshotWriter interface {
	Append(ctx context.Context, source string, snap models.Snapshot, raw []byte, fetchedAt time.Time) (models.StoredSnapshot, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

// SnapshotRefresh is a background worker that periodically fetches the
// descriptive metadata and stores it as a new snapshot.
type SnapshotRefresh struct {
	source    descriptives.Source
	store     SnapshotWriter
	log       *zap.Logger
	interval  time.Duration
	retention int
	now       func() time.Time

	mu    sync.Mutex
	sched *gocron.Scheduler
}

// NewSnapshotRefresh creates a new snapshot refresh worker.
//
// Parameters:
//   - source: where the upstream payload is fetched from
//   - store: where snapshots are written
//   - logger: zap logger for logging
//   - interval: how often to fetch (e.g., 1 hour)
//   - retention: how many snapshots to keep; 0 keeps all
func NewSnapshotRefresh(source descriptives.Source, store SnapshotWriter, logger *zap.Logger, interval time.Duration, retention int) *SnapshotRefresh {
	return &SnapshotRefresh{
		source:    source,
		store:     store,
		log:       logger,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// RefreshOnce fetches, parses and stores one snapshot.
func (w *SnapshotRefresh) RefreshOnce(ctx context.Context) (models.StoredSnapshot, error) {
	fetchCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), w.log, "fetch descriptives")
	raw, err := w.source.Fetch(fetchCtx)
	cancel()
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("fetch from %s: %w", w.source.Name(), err)
	}

	snap, err := descriptives.ParseOrganisations(raw, w.log)
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("parse payload from %s: %w", w.source.Name(), err)
	}
	if len(snap) == 0 {
		w.log.Warn("descriptives payload held no organisations", zap.String("source", w.source.Name()))
	}

	storeCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), w.log, "store snapshot")
	defer cancel()

	doc, err := w.store.Append(storeCtx, w.source.Name(), snap, raw, w.now())
	if err != nil {
		return models.StoredSnapshot{}, err
	}
	w.log.Info("snapshot stored",
		zap.String("run_id", doc.RunID),
		zap.String("timestamp", doc.Timestamp),
		zap.Int("organisations", len(snap)),
		zap.Int("raw_bytes", doc.RawSize))

	if w.retention > 0 {
		n, err := w.store.Prune(storeCtx, w.retention)
		if err != nil {
			w.log.Warn("failed to prune snapshots", zap.Error(err))
		} else if n > 0 {
			w.log.Info("pruned old snapshots", zap.Int64("count", n))
		}
	}
	return doc, nil
}

// Start schedules RefreshOnce every interval. The first run happens one
// interval after Start; call RefreshOnce directly for an immediate fetch.
func (w *SnapshotRefresh) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sched != nil {
		return nil
	}
	if w.interval <= 0 {
		return fmt.Errorf("snapshot refresh: interval must be positive, got %s", w.interval)
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	_, err := s.Every(w.interval).WaitForSchedule().Do(w.refresh)
	if err != nil {
		return fmt.Errorf("schedule snapshot refresh: %w", err)
	}
	s.StartAsync()
	w.sched = s

	w.log.Info("snapshot refresh worker started",
		zap.Duration("interval", w.interval),
		zap.Int("retention", w.retention),
		zap.String("source", w.source.Name()))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (w *SnapshotRefresh) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sched == nil {
		return
	}
	w.sched.Stop()
	w.sched = nil
	w.log.Info("snapshot refresh worker stopped")
}

func (w *SnapshotRefresh) refresh() {
	if _, err := w.RefreshOnce(context.Background()); err != nil {
		w.log.Error("scheduled snapshot refresh failed", zap.Error(err))
	}
}
