// Package charts builds the dashboard's chart figures. A Figure is plain
// data with plotly-compatible keys, so the browser can draw it without the
// server knowing anything about the charting library in use.
package charts

import (
	"encoding/json"
	"errors"
)

// ErrUnknownChartKind is returned for a donut kind other than organisation
// or country.
var ErrUnknownChartKind = errors.New("charts: unknown chart kind")

// FontFamily is the dashboard font.
const FontFamily = "Poppins, sans-serif"

// Figure is a chart: its traces and layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Orientation   string    `json:"orientation,omitempty"`
	X             []any     `json:"x,omitempty"`
	Y             []any     `json:"y,omitempty"`
	Labels        []string  `json:"labels,omitempty"`
	Values        []int     `json:"values,omitempty"`
	Proportions   []float64 `json:"customdata,omitempty"`
	Hole          float64   `json:"hole,omitempty"`
	Width         float64   `json:"width,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	HoverTemplate Templates `json:"hovertemplate,omitempty"`
}

// Templates holds hover templates. A single template applies to every point
// of the trace and is encoded as a string; several are encoded as a per-point
// array.
type Templates []string

// MarshalJSON encodes a single template as a scalar.
func (t Templates) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// Marker styles the bars of a trace.
type Marker struct {
	Line MarkerLine `json:"line"`
}

// MarkerLine is the outline of a bar.
type MarkerLine struct {
	Width float64 `json:"width"`
}

// Font selects a font family and colour.
type Font struct {
	Family string `json:"family,omitempty"`
	Color  string `json:"color,omitempty"`
}

// HoverLabel styles the hover box.
type HoverLabel struct {
	FontFamily string `json:"font_family"`
}

// Axis configures one axis.
type Axis struct {
	Visible    *bool  `json:"visible,omitempty"`
	TickFormat string `json:"tickformat,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Legend positions the legend.
type Legend struct {
	Orientation string  `json:"orientation"`
	TraceOrder  string  `json:"traceorder,omitempty"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Annotation is a text label placed on the plot.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font"`
}

// Layout is the figure layout.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	HoverLabel  *HoverLabel  `json:"hoverlabel,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	PlotBGColor string       `json:"plot_bgcolor,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

func hidden() *bool {
	v := false
	return &v
}

func dashboardFont() (*Font, *HoverLabel) {
	return &Font{Family: FontFamily}, &HoverLabel{FontFamily: FontFamily}
}
