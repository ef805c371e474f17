// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/descriptives"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/timeouts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// Descriptive metadata source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// Docker secret names read from SecretsDir.
const (
	secretDescriptivesURL   = "descriptives_url"
	secretDescriptivesToken = "descriptives_token"
)

// appConfigKeys defines the configuration keys for the data portal.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, global_schema_path, etc.
//   - Environment variables: DATAPORTAL_MONGO_URI, DATAPORTAL_REFRESH_INTERVAL, etc.
//   - Command-line flags: --mongo_uri, --refresh_interval, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "dataportal", Desc: "MongoDB database name"},

	// Global schema
	{Name: "global_schema_path", Default: "example_data/global_schema.json", Desc: "Path to the global schema (JSON or YAML)"},

	// Descriptive metadata acquisition
	{Name: "descriptives_source", Default: SourceFile, Desc: "Descriptives source: 'file' or 'http'"},
	{Name: "descriptives_file", Default: "example_data/mockresult.json", Desc: "Descriptives file read when the source is 'file'"},
	{Name: "descriptives_url", Default: "", Desc: "Descriptives endpoint fetched when the source is 'http'"},
	{Name: "descriptives_token", Default: "", Desc: "Bearer token for the descriptives endpoint"},
	{Name: "secrets_dir", Default: descriptives.DefaultSecretsDir, Desc: "Docker secrets directory"},

	// Snapshot refresh
	{Name: "refresh_interval", Default: "1h", Desc: "Snapshot refresh interval (e.g., 15m, 1h)"},
	{Name: "snapshot_retention", Default: 48, Desc: "Snapshots kept after each refresh (0 keeps all)"},

	// Presentation
	{Name: "render_rate_limit", Default: 30, Desc: "SVG exports and completeness posts per client IP per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Key the rate limit by X-Forwarded-For (only behind a header-rewriting proxy)"},
	{Name: "population_label", Default: "AYA", Desc: "Label for the counted population"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Multi-document operation timeout"},
	{Name: "timeout_long", Default: "60s", Desc: "Upstream fetch and startup timeout"},
}

// LoadConfig loads WAFFLE core config and the portal's app config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// DATAPORTAL_* environment variables and flags (flags > env > files >
// defaults). Docker secrets, when present, override the descriptives
// endpoint and token.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DATAPORTAL", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		GlobalSchemaPath: appValues.String("global_schema_path"),

		DescriptivesSource: strings.ToLower(strings.TrimSpace(appValues.String("descriptives_source"))),
		DescriptivesFile:   appValues.String("descriptives_file"),
		DescriptivesURL:    appValues.String("descriptives_url"),
		DescriptivesToken:  appValues.String("descriptives_token"),
		SecretsDir:         appValues.String("secrets_dir"),

		RefreshInterval:   appValues.Duration("refresh_interval", workers.DefaultRefreshInterval),
		SnapshotRetention: appValues.Int("snapshot_retention"),

		RenderRateLimit:   appValues.Int("render_rate_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),
		PopulationLabel:   appValues.String("population_label"),

		PingTimeout:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		ShortTimeout:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		MediumTimeout: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		LongTimeout:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	applySecrets(&appCfg, logger)

	return coreCfg, appCfg, nil
}

// applySecrets overrides the descriptives endpoint and token with Docker
// secrets when they exist.
func applySecrets(appCfg *AppConfig, logger *zap.Logger) {
	if v, ok := descriptives.ReadSecret(appCfg.SecretsDir, secretDescriptivesURL); ok {
		appCfg.DescriptivesURL = v
		logger.Info("descriptives URL read from secret", zap.String("secret", secretDescriptivesURL))
	}
	if v, ok := descriptives.ReadSecret(appCfg.SecretsDir, secretDescriptivesToken); ok {
		appCfg.DescriptivesToken = v
		logger.Info("descriptives token read from secret", zap.String("secret", secretDescriptivesToken))
	}
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before connecting, and the descriptives source
// must name something the refresh worker can read.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.DescriptivesSource {
	case SourceFile:
		if appCfg.DescriptivesFile == "" {
			return fmt.Errorf("descriptives_source 'file' requires descriptives_file to be set")
		}
	case SourceHTTP:
		if appCfg.DescriptivesURL == "" {
			return fmt.Errorf("descriptives_source 'http' requires descriptives_url (or the %s secret)", secretDescriptivesURL)
		}
	default:
		return fmt.Errorf("unknown descriptives_source %q (want 'file' or 'http')", appCfg.DescriptivesSource)
	}

	if appCfg.GlobalSchemaPath == "" {
		return fmt.Errorf("global_schema_path must be set")
	}
	if appCfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", appCfg.RefreshInterval)
	}
	if appCfg.RenderRateLimit < 0 {
		return fmt.Errorf("render_rate_limit must not be negative, got %d", appCfg.RenderRateLimit)
	}
	if appCfg.SnapshotRetention < 0 {
		return fmt.Errorf("snapshot_retention must not be negative, got %d", appCfg.SnapshotRetention)
	}

	return nil
}
