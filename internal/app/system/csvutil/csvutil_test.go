package csvutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/availability"
)

func TestWriteAvailability(t *testing.T) {
	tbl := &availability.Table{
		Text:          "AYA",
		Organisations: []string{"Leuven", "Utrecht"},
		Rows: []availability.Row{
			{Variable: "Sex", Total: 100, Counts: []int{40, 60}},
			{Value: "Female, Other", Total: 60, Counts: []int{40, 20}},
		},
	}

	var buf bytes.Buffer
	if err := WriteAvailability(&buf, tbl); err != nil {
		t.Fatalf("WriteAvailability() error = %v", err)
	}

	b := buf.Bytes()
	if !bytes.HasPrefix(b, utf8BOM) {
		t.Fatal("missing UTF-8 BOM")
	}
	if !bytes.Contains(b, []byte("\r\n")) {
		t.Error("expected CRLF line endings")
	}

	recs, err := csv.NewReader(bytes.NewReader(b[len(utf8BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	header := []string{"Variables", "Values", "Total AYAs", "Leuven", "Utrecht"}
	for i, h := range header {
		if recs[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, recs[0][i], h)
		}
	}
	if recs[2][1] != "Female, Other" {
		t.Errorf("quoted value not preserved: %q", recs[2][1])
	}
	if recs[1][4] != "60" {
		t.Errorf("Utrecht count = %q, want 60", recs[1][4])
	}
}
