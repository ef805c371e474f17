// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard feature under whatever mount point
// the top-level router chooses (e.g., "/dashboard").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.ServeSummary)
	r.Get("/sample-size", h.ServeSampleSize)
	r.Get("/donut/{kind}", h.ServeDonut)
	r.Get("/availability", h.ServeAvailability)
	r.Get("/availability.csv", h.ServeAvailabilityCSV)
	r.Get("/completeness", h.ServeCompleteness)

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(h.RenderLimit, h.Log))
		r.Post("/completeness", h.ComputeCompleteness)
		r.Get("/export/{chart}.svg", h.ServeExportSVG)
	})

	return r
}
