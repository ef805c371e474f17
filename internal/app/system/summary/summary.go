// Package summary computes the headline tiles of the dashboard (number of
// organisations, countries and patients) from the latest snapshot.
//
// Every function reports ok == false when there is no descriptive data at all,
// so callers can leave the tile placeholder in place.
package summary

import (
	"encoding/json"
	"strconv"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/normalize"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// Default label words, as shown on the dashboard tiles.
const (
	DefaultOrganisationText = "organisation"
	DefaultCountryStem      = "countr"
	DefaultPopulationText   = "AYA"
)

// Tile is a count and the word describing it. The dashboard renders it as
// two lines: Value, then Label.
type Tile struct {
	Count int
	Value string
	Label string
}

// MarshalJSON emits the tile with its rendered lines.
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count int      `json:"count"`
		Value string   `json:"value"`
		Label string   `json:"label"`
		Lines []string `json:"lines"`
	}{t.Count, t.Value, t.Label, []string{t.Value, t.Label}})
}

func newTile(n int, label string) Tile {
	return Tile{Count: n, Value: strconv.Itoa(n), Label: label}
}

// OrganisationCount counts the organisations in the latest snapshot.
func OrganisationCount(data models.DescriptiveData, text string) (Tile, bool) {
	latest, ok := data.Latest()
	if !ok {
		return Tile{}, false
	}
	if text == "" {
		text = DefaultOrganisationText
	}
	n := len(latest)
	return newTile(n, normalize.Plural(text, n)), true
}

// FieldCount counts the distinct values of a record field (only "country" is
// recorded today) in the latest snapshot. stem is completed with "ies"/"y".
func FieldCount(data models.DescriptiveData, field, stem string) (Tile, bool) {
	latest, ok := data.Latest()
	if !ok {
		return Tile{}, false
	}
	if stem == "" {
		stem = DefaultCountryStem
	}
	seen := make(map[string]struct{})
	for _, rec := range latest {
		seen[fieldValue(rec, field)] = struct{}{}
	}
	n := len(seen)
	return newTile(n, normalize.PluralY(stem, n)), true
}

// TotalSampleSize sums sample_size over the latest snapshot.
func TotalSampleSize(data models.DescriptiveData, text string) (Tile, bool) {
	latest, ok := data.Latest()
	if !ok {
		return Tile{}, false
	}
	if text == "" {
		text = DefaultPopulationText
	}
	total := 0
	for _, rec := range latest {
		total += rec.SampleSize
	}
	return newTile(total, normalize.Plural(text, total)), true
}

// Tiles bundles the three dashboard tiles.
type Tiles struct {
	Countries     Tile `json:"countries"`
	Organisations Tile `json:"organisations"`
	SampleSize    Tile `json:"sample_size"`
}

// All computes every tile. ok is false when there is no data.
func All(data models.DescriptiveData, populationText string) (Tiles, bool) {
	countries, ok := FieldCount(data, "country", DefaultCountryStem)
	if !ok {
		return Tiles{}, false
	}
	orgs, _ := OrganisationCount(data, DefaultOrganisationText)
	size, _ := TotalSampleSize(data, populationText)
	return Tiles{Countries: countries, Organisations: orgs, SampleSize: size}, true
}

func fieldValue(rec models.OrganisationRecord, field string) string {
	switch field {
	case "country", "":
		return rec.Country
	case "sample_size":
		return strconv.Itoa(rec.SampleSize)
	default:
		return ""
	}
}
