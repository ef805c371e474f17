package availability

import "fmt"

// TableID is the element id of the availability table on the dashboard.
const TableID = "table-data-availability"

// Colours used for the tick marks.
const (
	AvailableColour   = "green"
	UnavailableColour = "red"
)

// DataTableColumn describes one column of the rendered table.
type DataTableColumn struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ConditionalStyle colours the cells of one column that hold a given mark.
type ConditionalStyle struct {
	If    StyleCondition `json:"if"`
	Color string         `json:"color"`
}

// StyleCondition selects the cells a ConditionalStyle applies to.
type StyleCondition struct {
	FilterQuery string `json:"filter_query"`
	ColumnID    string `json:"column_id"`
}

// TooltipCell is a markdown tooltip.
type TooltipCell struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// FixedColumns pins the header row and the leading label columns.
type FixedColumns struct {
	Headers bool `json:"headers"`
	Data    int  `json:"data"`
}

// DataTable is the browser-side table specification: columns, display
// records, styling and per-cell tooltips.
type DataTable struct {
	ID                   string                   `json:"id"`
	Columns              []DataTableColumn        `json:"columns"`
	Data                 []map[string]any         `json:"data"`
	StyleTable           map[string]string        `json:"style_table"`
	StyleCell            map[string]string        `json:"style_cell"`
	StyleData            map[string]string        `json:"style_data"`
	StyleHeader          map[string]string        `json:"style_header"`
	StyleDataConditional []ConditionalStyle       `json:"style_data_conditional"`
	TooltipData          []map[string]TooltipCell `json:"tooltip_data"`
	TooltipDuration      *int                     `json:"tooltip_duration"`
	FixedColumns         FixedColumns             `json:"fixed_columns"`
}

// DataTable builds the display specification of t. Organisation cells carry
// tick marks; counts remain visible in the total column.
func (t *Table) DataTable() DataTable {
	cols := t.Columns()

	dt := DataTable{
		ID:      TableID,
		Columns: make([]DataTableColumn, len(cols)),
		Data:    make([]map[string]any, len(t.Rows)),
		StyleTable: map[string]string{
			"height":    "450px",
			"overflowY": "auto",
			"maxWidth":  "100%",
			"width":     "100%",
			"overflowX": "auto",
		},
		StyleCell: map[string]string{
			"fontSize":     "14px",
			"border":       "none",
			"padding":      "0px 15px 0px 0px",
			"width":        fmt.Sprintf("%g%%", 100/float64(len(cols))),
			"textOverflow": "ellipsis",
			"overflow":     "hidden",
		},
		StyleData: map[string]string{"border": "none"},
		StyleHeader: map[string]string{
			"position":        "sticky",
			"top":             "0",
			"backgroundColor": "#ffffff",
			"fontWeight":      "bold",
		},
		TooltipData:  make([]map[string]TooltipCell, len(t.Rows)),
		FixedColumns: FixedColumns{Headers: true, Data: 2},
	}

	for i, c := range cols {
		dt.Columns[i] = DataTableColumn{Name: c, ID: c}
	}

	total := t.TotalColumn()
	for i, r := range t.Display() {
		rec := map[string]any{
			VariablesColumn: r.Variable,
			ValuesColumn:    r.Value,
			total:           r.Total,
		}
		for j, org := range t.Organisations {
			rec[org] = r.Marks[j]
		}
		dt.Data[i] = rec

		tip := t.Tooltips[i]
		cells := map[string]TooltipCell{
			VariablesColumn: markdown(tip.Variables),
			ValuesColumn:    markdown(tip.Values),
			total:           markdown(tip.Total),
		}
		for j, org := range t.Organisations {
			cells[org] = markdown(tip.Organisations[j])
		}
		dt.TooltipData[i] = cells
	}

	for _, org := range t.Organisations {
		dt.StyleDataConditional = append(dt.StyleDataConditional,
			ConditionalStyle{
				If:    StyleCondition{FilterQuery: fmt.Sprintf("{%s} = %q", org, Available), ColumnID: org},
				Color: AvailableColour,
			},
			ConditionalStyle{
				If:    StyleCondition{FilterQuery: fmt.Sprintf("{%s} = %q", org, Unavailable), ColumnID: org},
				Color: UnavailableColour,
			},
		)
	}

	return dt
}

func markdown(s string) TooltipCell {
	return TooltipCell{Value: s, Type: "markdown"}
}
