// internal/app/features/dashboard/charts.go
package dashboard

import (
	"errors"
	"io"
	"net/http"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/charts"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/csvutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeSampleSize handles GET /dashboard/sample-size.
func (h *Handler) ServeSampleSize(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	fig, ok := charts.SampleSizeBar(data, h.Text)
	if !ok {
		noData(w)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// ServeDonut handles GET /dashboard/donut/{kind}, kind being organisation
// or country.
func (h *Handler) ServeDonut(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	fig, ok, err := charts.Donut(data, h.Text, kind)
	if errors.Is(err, charts.ErrUnknownChartKind) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if !ok {
		noData(w)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// ServeCompleteness handles GET /dashboard/completeness: the completeness
// chart of the current availability table.
func (h *Handler) ServeCompleteness(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	tbl, ok := availability.Build(h.Schema, data, h.Text)
	if !ok {
		noData(w)
		return
	}
	writeJSON(w, http.StatusOK, charts.CompletenessChart(tbl))
}

// ComputeCompleteness handles POST /dashboard/completeness. The body is an
// availability table in split form, as returned by /dashboard/availability.
func (h *Handler) ComputeCompleteness(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, csvutil.MaxFrameSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	tbl, err := availability.ParseSplit(body)
	switch {
	case errors.Is(err, availability.ErrEmptyFrame):
		noData(w)
		return
	case err != nil:
		h.Log.Warn("invalid availability frame", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(tbl.Rows) > csvutil.MaxRows {
		writeError(w, http.StatusRequestEntityTooLarge, "too many rows")
		return
	}
	writeJSON(w, http.StatusOK, charts.CompletenessChart(tbl))
}
