package availability

import "sort"

// ColumnCompleteness splits one column's variable count into records that
// also carry a value and records that do not.
type ColumnCompleteness struct {
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

// CompletenessRow is the completeness of one variable, for the total column
// and for each organisation (aligned with Table.Organisations).
type CompletenessRow struct {
	Variable      string               `json:"variable"`
	Total         ColumnCompleteness   `json:"total"`
	Organisations []ColumnCompleteness `json:"organisations"`
}

type columnSums struct {
	total int
	orgs  []int
}

// Compute derives per-variable completeness from an availability table.
//
// A variable row gives how many records have the variable; the value rows
// beneath it give how many of those records have a mapped value. The
// difference, floored at zero, is incomplete. Variables without value rows
// are entirely incomplete. Rows are returned sorted by variable label.
func Compute(t *Table) []CompletenessRow {
	if t == nil {
		return nil
	}
	n := len(t.Organisations)

	var order []string
	vars := map[string]columnSums{}
	vals := map[string]columnSums{}

	current := ""
	for _, r := range t.Rows {
		if r.IsVariableRow() {
			current = r.Variable
			if _, seen := vars[current]; !seen {
				order = append(order, current)
			}
			vars[current] = columnSums{total: r.Total, orgs: append([]int(nil), r.Counts...)}
			continue
		}
		if current == "" {
			continue
		}
		s, ok := vals[current]
		if !ok {
			s = columnSums{orgs: make([]int, n)}
		}
		s.total += r.Total
		for j := 0; j < n && j < len(r.Counts); j++ {
			s.orgs[j] += r.Counts[j]
		}
		vals[current] = s
	}

	out := make([]CompletenessRow, 0, len(order))
	for _, name := range order {
		v := vars[name]
		s, hasValues := vals[name]
		row := CompletenessRow{Variable: name, Organisations: make([]ColumnCompleteness, n)}
		row.Total = split(v.total, s.total, hasValues)
		for j := 0; j < n; j++ {
			var have, sum int
			if j < len(v.orgs) {
				have = v.orgs[j]
			}
			if hasValues {
				sum = s.orgs[j]
			}
			row.Organisations[j] = split(have, sum, hasValues)
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Variable < out[j].Variable })
	return out
}

func split(count, valueSum int, hasValues bool) ColumnCompleteness {
	unavailable := count
	if hasValues {
		unavailable = count - valueSum
		if unavailable < 0 {
			unavailable = 0
		}
	}
	return ColumnCompleteness{Available: count - unavailable, Unavailable: unavailable}
}
