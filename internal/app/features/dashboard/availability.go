// internal/app/features/dashboard/availability.go
package dashboard

import (
	"fmt"
	"net/http"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/csvutil"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.uber.org/zap"
)

type availabilityResponse struct {
	Table availability.DataTable  `json:"table"`
	Frame availability.SplitFrame `json:"frame"`
}

// ServeAvailability handles GET /dashboard/availability. The response
// carries the display table and the split frame of counts that the
// completeness endpoint accepts.
func (h *Handler) ServeAvailability(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	tbl, ok := availability.Build(h.Schema, data, h.Text)
	if !ok {
		noData(w)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		Table: tbl.DataTable(),
		Frame: tbl.Split(),
	})
}

// ServeAvailabilityCSV handles GET /dashboard/availability.csv.
func (h *Handler) ServeAvailabilityCSV(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	tbl, ok := availability.Build(h.Schema, data, h.Text)
	if !ok {
		noData(w)
		return
	}

	key, _ := data.LatestKey()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvFilename(key)))
	if err := csvutil.WriteAvailability(w, tbl); err != nil {
		h.Log.Warn("write availability csv failed", zap.Error(err))
	}
}

// csvFilename derives a filename from a snapshot timestamp.
func csvFilename(timestamp string) string {
	if t, ok := models.ParseTimestamp(timestamp); ok {
		return "data-availability-" + t.Format("2006-01-02") + ".csv"
	}
	return "data-availability.csv"
}
