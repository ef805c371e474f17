package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFrame is returned when a split frame has no rows.
	ErrEmptyFrame = errors.New("availability: empty frame")
	// ErrMalformedFrame is returned when a split frame does not have the
	// availability table's shape.
	ErrMalformedFrame = errors.New("availability: malformed frame")
)

// SplitFrame is the column-oriented JSON form of a table: column names, a
// row index and the row values.
type SplitFrame struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Data    [][]any  `json:"data"`
}

// Split returns the split frame of t, with counts (not tick marks) in the
// organisation columns.
func (t *Table) Split() SplitFrame {
	f := SplitFrame{
		Columns: t.Columns(),
		Index:   make([]int, len(t.Rows)),
		Data:    make([][]any, len(t.Rows)),
	}
	for i, r := range t.Rows {
		f.Index[i] = i
		row := make([]any, 0, 3+len(r.Counts))
		row = append(row, r.Variable, r.Value, r.Total)
		for _, n := range r.Counts {
			row = append(row, n)
		}
		f.Data[i] = row
	}
	return f
}

// MarshalSplit encodes t as a split frame.
func (t *Table) MarshalSplit() ([]byte, error) {
	return json.Marshal(t.Split())
}

// ParseSplit decodes a split frame produced by MarshalSplit. Tooltips and
// schema keys are not part of the frame and are left empty.
func ParseSplit(b []byte) (*Table, error) {
	var f SplitFrame
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return f.Table()
}

// Table rebuilds the availability table held by f.
func (f SplitFrame) Table() (*Table, error) {
	if len(f.Data) == 0 {
		return nil, ErrEmptyFrame
	}
	if len(f.Columns) < 3 || f.Columns[0] != VariablesColumn || f.Columns[1] != ValuesColumn {
		return nil, fmt.Errorf("%w: unexpected columns %v", ErrMalformedFrame, f.Columns)
	}
	text, ok := populationText(f.Columns[2])
	if !ok {
		return nil, fmt.Errorf("%w: unexpected total column %q", ErrMalformedFrame, f.Columns[2])
	}

	t := &Table{
		Text:          text,
		Organisations: append([]string(nil), f.Columns[3:]...),
		Rows:          make([]Row, len(f.Data)),
		Tooltips:      make([]Tooltip, len(f.Data)),
	}
	for i, cells := range f.Data {
		if len(cells) != len(f.Columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedFrame, i, len(cells), len(f.Columns))
		}
		r := Row{
			Variable: cellString(cells[0]),
			Value:    cellString(cells[1]),
			Total:    cellInt(cells[2]),
			Counts:   make([]int, len(t.Organisations)),
		}
		for j := range t.Organisations {
			r.Counts[j] = cellInt(cells[3+j])
		}
		t.Rows[i] = r
		t.Tooltips[i] = Tooltip{Organisations: make([]string, len(t.Organisations))}
	}
	return t, nil
}

// populationText recovers "AYA" from "Total AYAs".
func populationText(col string) (string, bool) {
	if !strings.HasPrefix(col, "Total ") || !strings.HasSuffix(col, "s") {
		return "", false
	}
	text := strings.TrimSuffix(strings.TrimPrefix(col, "Total "), "s")
	return text, text != ""
}

func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func cellInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
