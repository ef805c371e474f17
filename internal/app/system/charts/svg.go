package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/htmlsanitize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToRender is returned when a chart has no non-zero value.
var ErrNothingToRender = errors.New("charts: nothing to render")

// Export sizes in pixels.
const (
	DonutWidth         = 700
	DonutHeight        = 500
	CompletenessWidth  = 1100
	CompletenessHeight = 400
)

var (
	completeColour   = drawing.ColorFromHex("636efa")
	incompleteColour = drawing.ColorFromHex("ef553b")
)

// RenderDonutSVG writes the donut of shares as SVG. The renderer writes
// text nodes verbatim, so every label and the title are escaped first.
func RenderDonutSVG(w io.Writer, title string, shares []Share) error {
	values := make([]chart.Value, 0, len(shares))
	for _, s := range shares {
		if s.Count <= 0 {
			continue
		}
		values = append(values, chart.Value{Value: float64(s.Count), Label: htmlsanitize.Label(s.Label)})
	}
	if len(values) == 0 {
		return ErrNothingToRender
	}

	donut := chart.DonutChart{
		Title:  htmlsanitize.Label(title),
		Width:  DonutWidth,
		Height: DonutHeight,
		Values: values,
	}
	if err := donut.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render donut: %w", err)
	}
	return nil
}

// RenderCompletenessSVG writes the completeness chart of f as SVG, one
// stacked bar per variable.
func RenderCompletenessSVG(w io.Writer, f Figure) error {
	if len(f.Data) != 2 || len(f.Data[0].X) == 0 {
		return ErrNothingToRender
	}
	complete, incomplete := f.Data[0], f.Data[1]

	bars := make([]chart.StackedBar, 0, len(complete.X))
	nonZero := false
	for i := range complete.X {
		have, lack := asFloat(complete.Y[i]), asFloat(incomplete.Y[i])
		if have+lack > 0 {
			nonZero = true
		}
		// X labels come from CompletenessChart and are already escaped.
		name, _ := complete.X[i].(string)
		bars = append(bars, chart.StackedBar{
			Name: name,
			Values: []chart.Value{
				{Value: have, Label: CompleteTrace, Style: chart.Style{FillColor: completeColour, StrokeColor: completeColour}},
				{Value: lack, Label: IncompleteTrace, Style: chart.Style{FillColor: incompleteColour, StrokeColor: incompleteColour}},
			},
		})
	}
	if !nonZero {
		return ErrNothingToRender
	}

	title := ""
	if f.Layout.YAxis != nil {
		title = f.Layout.YAxis.Title
	}
	sbc := chart.StackedBarChart{
		Title:  htmlsanitize.Label(title),
		Width:  CompletenessWidth,
		Height: CompletenessHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: bars,
	}
	if err := sbc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render completeness: %w", err)
	}
	return nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
