// Package availability builds the data-availability cross-tabulation: one row
// per schema variable and per categorical value, one column per organisation,
// each cell holding how many records of that organisation carry the class.
package availability

import (
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/normalize"
)

// Fixed column names of the table. The total column is named after the
// population text (see TotalColumn).
const (
	VariablesColumn = "Variables"
	ValuesColumn    = "Values"
)

// TotalColumn returns the name of the total column, e.g. "Total AYAs".
func TotalColumn(text string) string {
	return "Total " + text + "s"
}

// Row is one line of the availability table. Variable rows have Value empty;
// value rows have Variable empty (the variable is the last one above them).
type Row struct {
	Variable string
	Value    string
	Total    int
	// Counts is aligned with Table.Organisations.
	Counts []int

	// VariableKey and ValueKey are the schema identifiers behind the labels.
	VariableKey string
	ValueKey    string
}

// IsVariableRow reports whether r describes a variable rather than a value.
func (r Row) IsVariableRow() bool {
	return r.Variable != ""
}

// Tooltip carries the markdown explanation for every cell of a row.
type Tooltip struct {
	Variables string
	Values    string
	Total     string
	// Organisations is aligned with Table.Organisations.
	Organisations []string
}

// Table is the availability table together with its tooltips.
type Table struct {
	Text          string
	Organisations []string
	Rows          []Row
	Tooltips      []Tooltip
}

// TotalColumn returns the name of this table's total column.
func (t *Table) TotalColumn() string {
	return TotalColumn(t.Text)
}

// Columns lists the column names in display order.
func (t *Table) Columns() []string {
	cols := make([]string, 0, 3+len(t.Organisations))
	cols = append(cols, VariablesColumn, ValuesColumn, t.TotalColumn())
	return append(cols, t.Organisations...)
}

// Count returns the cell of row i for organisation org.
func (t *Table) Count(i int, org string) int {
	for j, name := range t.Organisations {
		if name == org {
			return t.Rows[i].Counts[j]
		}
	}
	return 0
}

// Tick marks shown instead of counts in the display table.
const (
	Available   = "✔"
	Unavailable = "✖"
)

// DisplayRow is a row whose organisation cells are tick marks.
type DisplayRow struct {
	Variable string
	Value    string
	Total    int
	Marks    []string
}

// Display converts organisation counts into tick marks.
func (t *Table) Display() []DisplayRow {
	out := make([]DisplayRow, len(t.Rows))
	for i, r := range t.Rows {
		marks := make([]string, len(r.Counts))
		for j, n := range r.Counts {
			if n > 0 {
				marks[j] = Available
			} else {
				marks[j] = Unavailable
			}
		}
		out[i] = DisplayRow{Variable: r.Variable, Value: r.Value, Total: r.Total, Marks: marks}
	}
	return out
}

// spaced and label are shorthands for the two display forms of identifiers.
func spaced(s string) string { return normalize.Spaced(s) }
func label(s string) string  { return normalize.Label(s) }
