// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for the data portal.
//
// These values come from environment variables (DATAPORTAL_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers the framework-level settings (ports, TLS, logging, CORS); everything
// specific to the portal lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// GlobalSchemaPath points at the collaboration's global schema (JSON or YAML).
	GlobalSchemaPath string

	// Descriptive metadata acquisition
	DescriptivesSource string // "file" or "http"
	DescriptivesFile   string // Path read when DescriptivesSource is "file"
	DescriptivesURL    string // Endpoint fetched when DescriptivesSource is "http"
	DescriptivesToken  string // Optional bearer token for DescriptivesURL
	SecretsDir         string // Docker secrets directory (overrides URL and token)

	// Snapshot refresh
	RefreshInterval   time.Duration // How often the worker fetches a new snapshot
	SnapshotRetention int           // Snapshots kept after each refresh (0 keeps all)

	// RenderRateLimit caps SVG exports and posted completeness requests per
	// client IP per minute (0 disables the limit).
	RenderRateLimit int

	// TrustProxyHeaders keys the rate limit by X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool

	// PopulationLabel names what the sample sizes count (e.g., "AYA").
	PopulationLabel string

	// Operation timeouts (zero keeps the defaults)
	PingTimeout   time.Duration
	ShortTimeout  time.Duration
	MediumTimeout time.Duration
	LongTimeout   time.Duration
}
