// internal/app/features/dashboard/export.go
package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/charts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Exportable charts.
const (
	ExportOrganisation = "organisation"
	ExportCountry      = "country"
	ExportCompleteness = "completeness"
)

// ServeExportSVG handles GET /dashboard/export/{chart}.svg.
func (h *Handler) ServeExportSVG(w http.ResponseWriter, r *http.Request) {
	chart := chi.URLParam(r, "chart")
	switch chart {
	case ExportOrganisation, ExportCountry, ExportCompleteness:
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", chart))
		return
	}

	data, ok := h.load(w, r)
	if !ok {
		return
	}
	latest, ok := data.Latest()
	if !ok {
		noData(w)
		return
	}

	var buf bytes.Buffer
	var err error
	if chart == ExportCompleteness {
		tbl, _ := availability.Build(h.Schema, data, h.Text)
		err = charts.RenderCompletenessSVG(&buf, charts.CompletenessChart(tbl))
	} else {
		shares, _ := charts.DonutShares(latest, chart)
		err = charts.RenderDonutSVG(&buf, fmt.Sprintf("%ss per %s", h.Text, chart), shares)
	}
	if errors.Is(err, charts.ErrNothingToRender) {
		noData(w)
		return
	}
	if err != nil {
		h.Log.Error("svg export failed", zap.String("chart", chart), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render error")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.svg"`, chart))
	_, _ = w.Write(buf.Bytes())
}
