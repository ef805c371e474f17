package charts

import (
	"fmt"
	"strconv"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/htmlsanitize"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/normalize"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// SampleSizeBar builds the single stacked horizontal bar that splits the
// total sample size by organisation. ok is false when data is empty.
func SampleSizeBar(data models.DescriptiveData, text string) (Figure, bool) {
	latest, ok := data.Latest()
	if !ok {
		return Figure{}, false
	}
	if text == "" {
		text = "AYA"
	}

	shares := SampleSizeShares(latest)
	category := fmt.Sprintf("Number of %ss per organisation", text)

	fig := Figure{
		Data: make([]Trace, 0, len(shares)),
		Layout: Layout{
			Title:   category,
			BarMode: "stack",
			YAxis:   &Axis{Visible: hidden()},
			XAxis:   &Axis{Visible: hidden(), TickFormat: ",.0%"},
			Legend: &Legend{
				Orientation: "h",
				TraceOrder:  "normal",
				YAnchor:     "center",
				Y:           0,
				XAnchor:     "center",
				X:           0.48,
			},
			Height: 100,
			Margin: &Margin{L: 45, R: 0, T: 35, B: 25},
		},
	}

	cumulative := 0.0
	for _, s := range shares {
		org := htmlsanitize.Label(s.Label)
		fig.Data = append(fig.Data, Trace{
			Type:        "bar",
			Name:        org,
			Orientation: "h",
			X:           []any{s.Proportion},
			Y:           []any{category},
			Marker:      &Marker{Line: MarkerLine{Width: 0}},
			HoverTemplate: Templates{fmt.Sprintf(
				"%s has made data of %d %s available, which is %.2f%% of all available %s data.",
				org, s.Count, normalize.Plural(text, s.Count), s.Proportion*100, text,
			)},
		})

		cumulative += s.Proportion
		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			X:    cumulative - s.Proportion/2,
			Y:    0,
			Text: strconv.Itoa(s.Count),
			Font: Font{Color: "white"},
		})
	}

	return fig, true
}
