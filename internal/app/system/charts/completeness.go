package charts

import (
	"fmt"
	"strings"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/htmlsanitize"
)

// Completeness trace names.
const (
	CompleteTrace   = "Complete information"
	IncompleteTrace = "Incomplete information"
)

// CompletenessChart builds the stacked bar chart of complete and incomplete
// information per variable.
func CompletenessChart(t *availability.Table) Figure {
	rows := availability.Compute(t)
	text := "AYA"
	var orgs []string
	if t != nil {
		text = t.Text
		orgs = make([]string, len(t.Organisations))
		for i, org := range t.Organisations {
			orgs[i] = htmlsanitize.Label(org)
		}
	}

	complete := Trace{Type: "bar", Name: CompleteTrace, Width: 0.5}
	incomplete := Trace{Type: "bar", Name: IncompleteTrace, Width: 0.5}

	for _, r := range rows {
		name := htmlsanitize.Label(r.Variable)
		complete.X = append(complete.X, name)
		complete.Y = append(complete.Y, r.Total.Available)
		incomplete.X = append(incomplete.X, name)
		incomplete.Y = append(incomplete.Y, r.Total.Unavailable)

		have := make([]int, len(r.Organisations))
		lack := make([]int, len(r.Organisations))
		for j, c := range r.Organisations {
			have[j], lack[j] = c.Available, c.Unavailable
		}
		complete.HoverTemplate = append(complete.HoverTemplate,
			completenessHover(name, "complete", r.Total.Available, text, orgs, have))
		incomplete.HoverTemplate = append(incomplete.HoverTemplate,
			completenessHover(name, "incomplete", r.Total.Unavailable, text, orgs, lack))
	}

	font, hover := dashboardFont()
	return Figure{
		Data: []Trace{complete, incomplete},
		Layout: Layout{
			BarMode:     "stack",
			Font:        font,
			HoverLabel:  hover,
			PlotBGColor: "rgba(0,0,0,0)",
			Width:       1100,
			Height:      400,
			Margin:      &Margin{L: 20, R: 20, T: 20, B: 20},
			Legend: &Legend{
				Orientation: "h",
				YAnchor:     "top",
				Y:           -0.3,
				XAnchor:     "center",
				X:           0.5,
			},
			YAxis: &Axis{Title: fmt.Sprintf("Total number of %ss", text)},
		},
	}
}

func completenessHover(variable, kind string, total int, text string, orgs []string, counts []int) string {
	lines := make([]string, len(orgs))
	for i, org := range orgs {
		lines[i] = fmt.Sprintf("%s: <b>%d</b>", org, counts[i])
	}
	return fmt.Sprintf("<extra></extra><b>%s</b><br>Total %s information: <b>%d</b> %ss<br><br>Share per organisation<br>",
		variable, kind, total, text) + strings.Join(lines, "<br>")
}
