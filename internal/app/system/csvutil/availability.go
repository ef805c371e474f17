// internal/app/system/csvutil/availability.go
package csvutil

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteAvailability writes t as CSV with the table's column headers and
// counts (not tick marks) in every organisation column.
func WriteAvailability(w io.Writer, t *availability.Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := make([]string, 0, 3+len(r.Counts))
		rec = append(rec, r.Variable, r.Value, strconv.Itoa(r.Total))
		for _, n := range r.Counts {
			rec = append(rec, strconv.Itoa(n))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
