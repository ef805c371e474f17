// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	dashboardfeature "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/features/dashboard"
	healthfeature "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/features/health"
	snapshotstore "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/store/snapshots"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for the portal.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. The portal mounts two feature routers: /health
// for load balancers and /dashboard for the chart and table data.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	store := snapshotstore.New(deps.MongoDatabase)
	st := current()

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.MongoClient, store, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	dashboardHandler := dashboardfeature.NewHandler(store, st.schema, appCfg.PopulationLabel, logger)
	if appCfg.RenderRateLimit > 0 {
		limiter := ratelimit.New(appCfg.RenderRateLimit, time.Minute)
		if appCfg.TrustProxyHeaders {
			limiter.TrustProxyHeaders()
		}
		updateState(func(s *runtimeState) { s.renderLimit = limiter })
		dashboardHandler.RenderLimit = limiter
	}
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	return r, nil
}
