// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	snapshotstore "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/store/snapshots"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/descriptives"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/ratelimit"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/timeouts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/workers"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// runtimeState is what Startup prepares for BuildHandler and Shutdown.
type runtimeState struct {
	schema      models.GlobalSchema
	refresh     *workers.SnapshotRefresh
	renderLimit *ratelimit.Limiter
}

var (
	stateMu sync.RWMutex
	state   runtimeState
)

func current() runtimeState {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return state
}

func updateState(fn func(*runtimeState)) {
	stateMu.Lock()
	fn(&state)
	stateMu.Unlock()
}

// Startup runs one-time initialization after the DB connection and indexes
// are in place: it applies the configured timeouts, loads the global schema,
// fetches an initial snapshot and starts the refresh worker.
//
// A failed initial fetch is logged, not fatal; the dashboard serves whatever
// snapshots are already stored until the next scheduled refresh succeeds.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.PingTimeout,
		Short:  appCfg.ShortTimeout,
		Medium: appCfg.MediumTimeout,
		Long:   appCfg.LongTimeout,
	})

	schema, err := LoadSchema(appCfg.GlobalSchemaPath)
	if err != nil {
		logger.Error("global schema load failed", zap.String("path", appCfg.GlobalSchemaPath), zap.Error(err))
		return err
	}
	logger.Info("global schema loaded",
		zap.String("path", appCfg.GlobalSchemaPath),
		zap.Int("variables", len(schema.Variables)))

	source, err := NewSource(appCfg)
	if err != nil {
		return err
	}

	store := snapshotstore.New(deps.MongoDatabase)
	refresh := workers.NewSnapshotRefresh(source, store, logger, appCfg.RefreshInterval, appCfg.SnapshotRetention)

	if _, err := refresh.RefreshOnce(ctx); err != nil {
		logger.Warn("initial snapshot refresh failed", zap.String("source", source.Name()), zap.Error(err))
	}
	if err := refresh.Start(); err != nil {
		return err
	}

	updateState(func(s *runtimeState) {
		s.schema = schema
		s.refresh = refresh
	})
	return nil
}

// LoadSchema reads the global schema from path. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func LoadSchema(path string) (models.GlobalSchema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.GlobalSchema{}, fmt.Errorf("read global schema: %w", err)
	}

	var schema models.GlobalSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &schema)
	default:
		err = json.Unmarshal(b, &schema)
	}
	if err != nil {
		return models.GlobalSchema{}, fmt.Errorf("decode global schema %s: %w", path, err)
	}
	return schema, nil
}

// NewSource builds the descriptives source named by the config.
func NewSource(appCfg AppConfig) (descriptives.Source, error) {
	switch appCfg.DescriptivesSource {
	case SourceFile:
		return descriptives.FileSource{Path: appCfg.DescriptivesFile}, nil
	case SourceHTTP:
		return descriptives.HTTPSource{
			URL:    appCfg.DescriptivesURL,
			Token:  appCfg.DescriptivesToken,
			Client: &http.Client{Timeout: timeouts.Long()},
		}, nil
	default:
		return nil, fmt.Errorf("unknown descriptives_source %q", appCfg.DescriptivesSource)
	}
}
