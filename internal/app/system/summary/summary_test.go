package summary_test

import (
	"encoding/json"
	"testing"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/system/summary"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() models.DescriptiveData {
	return models.DescriptiveData{
		"2024-01-01T10:00:00": {
			"Old Org": {SampleSize: 999, Country: "Nowhere"},
		},
		"2024-05-01T10:00:00": {
			"Org A": {SampleSize: 10, Country: "Netherlands"},
			"Org B": {SampleSize: 5, Country: "Belgium"},
			"Org C": {SampleSize: 1, Country: "Netherlands"},
		},
	}
}

func TestEmptyDataYieldsNoTile(t *testing.T) {
	for _, data := range []models.DescriptiveData{nil, {}} {
		_, ok := summary.OrganisationCount(data, "")
		assert.False(t, ok)
		_, ok = summary.FieldCount(data, "country", "")
		assert.False(t, ok)
		_, ok = summary.TotalSampleSize(data, "")
		assert.False(t, ok)
		_, ok = summary.All(data, "")
		assert.False(t, ok)
	}
}

func TestOrganisationCount_UsesLatestSnapshot(t *testing.T) {
	tile, ok := summary.OrganisationCount(sampleData(), "")
	require.True(t, ok)
	assert.Equal(t, 3, tile.Count)
	assert.Equal(t, "3", tile.Value)
	assert.Equal(t, "organisations", tile.Label)
}

func TestOrganisationCount_Singular(t *testing.T) {
	data := models.DescriptiveData{"2024-01-01T00:00:00": {"Only": {SampleSize: 1}}}
	tile, ok := summary.OrganisationCount(data, "institution")
	require.True(t, ok)
	assert.Equal(t, "institution", tile.Label)
}

func TestFieldCount_DistinctCountries(t *testing.T) {
	tile, ok := summary.FieldCount(sampleData(), "country", "countr")
	require.True(t, ok)
	assert.Equal(t, 2, tile.Count)
	assert.Equal(t, "countries", tile.Label)

	single := models.DescriptiveData{"t": {"A": {Country: "NL"}, "B": {Country: "NL"}}}
	tile, _ = summary.FieldCount(single, "country", "")
	assert.Equal(t, "country", tile.Label)
}

func TestTotalSampleSize(t *testing.T) {
	tile, ok := summary.TotalSampleSize(sampleData(), "AYA")
	require.True(t, ok)
	assert.Equal(t, 16, tile.Count)
	assert.Equal(t, "AYAs", tile.Label)
}

func TestTotalSampleSize_EmptySnapshot(t *testing.T) {
	data := models.DescriptiveData{"2024-01-01T00:00:00": {}}
	tile, ok := summary.TotalSampleSize(data, "")
	require.True(t, ok)
	assert.Equal(t, 0, tile.Count)
	assert.Equal(t, "AYA", tile.Label)
}

func TestTile_JSON(t *testing.T) {
	tile, _ := summary.OrganisationCount(sampleData(), "")
	b, err := json.Marshal(tile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":3,"value":"3","label":"organisations","lines":["3","organisations"]}`, string(b))
}

func TestAll(t *testing.T) {
	tiles, ok := summary.All(sampleData(), "patient")
	require.True(t, ok)
	assert.Equal(t, 2, tiles.Countries.Count)
	assert.Equal(t, 3, tiles.Organisations.Count)
	assert.Equal(t, "patients", tiles.SampleSize.Label)
}
