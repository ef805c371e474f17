package charts

import (
	"fmt"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/htmlsanitize"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// Donut kinds.
const (
	KindOrganisation = "organisation"
	KindCountry      = "country"
)

// DonutHole is the relative size of the hole in a donut chart.
const DonutHole = 0.56

// DonutShares returns the shares a donut of the given kind shows.
func DonutShares(s models.Snapshot, kind string) ([]Share, error) {
	switch kind {
	case KindOrganisation:
		return SampleSizeShares(s), nil
	case KindCountry:
		return CountryShares(s), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChartKind, kind)
}

// Donut builds a donut chart of sample sizes per organisation or per
// country. ok is false when data is empty; err is set for an unknown kind.
func Donut(data models.DescriptiveData, text, kind string) (fig Figure, ok bool, err error) {
	latest, ok := data.Latest()
	if !ok {
		return Figure{}, false, nil
	}
	if text == "" {
		text = "AYA"
	}
	shares, err := DonutShares(latest, kind)
	if err != nil {
		return Figure{}, false, err
	}

	trace := Trace{
		Type:        "pie",
		Name:        "",
		Hole:        DonutHole,
		Labels:      make([]string, len(shares)),
		Values:      make([]int, len(shares)),
		Proportions: make([]float64, len(shares)),
		HoverTemplate: Templates{fmt.Sprintf(
			"<b>%%{label}</b><br>Available %s data: <b>%%{value}</b><br>"+
				"Proportion of all available %s data: <b>%%{percent}</b>",
			text, text,
		)},
	}
	for i, s := range shares {
		trace.Labels[i] = htmlsanitize.Label(s.Label)
		trace.Values[i] = s.Count
		trace.Proportions[i] = s.Proportion
	}

	font, hover := dashboardFont()
	fig = Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title:      fmt.Sprintf("%ss per %s", text, kind),
			Font:       font,
			HoverLabel: hover,
			Legend: &Legend{
				Orientation: "h",
				YAnchor:     "top",
				Y:           0,
				XAnchor:     "center",
				X:           0.5,
			},
		},
	}
	return fig, true, nil
}
