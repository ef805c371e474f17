package descriptives

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const payload = `[
  {"organisation": "Utrecht", "sample_size": 60, "country": "NL",
   "variable_info": [{"main_class": "c", "main_class_count": 60, "sub_class": "c", "sub_class_count": 60}]},
  {"organisation": "Leuven", "sample_size": "10", "country": "BE"}
]`

func TestParseOrganisations(t *testing.T) {
	snap, err := ParseOrganisations([]byte(payload), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, snap, 2)

	assert.Equal(t, 60, snap["Utrecht"].SampleSize)
	assert.Equal(t, "NL", snap["Utrecht"].Country)
	require.Len(t, snap["Utrecht"].VariableInfo, 1)
	assert.Equal(t, 60, snap["Utrecht"].VariableInfo[0].MainClassCount)

	assert.Equal(t, 10, snap["Leuven"].SampleSize)
	assert.Nil(t, snap["Leuven"].VariableInfo)
}

func TestParseOrganisations_NotAList(t *testing.T) {
	for _, in := range []string{`{"organisation": "x"}`, `"text"`, `42`, `null`, `["a", "b"]`} {
		snap, err := ParseOrganisations([]byte(in), zap.NewNop())
		require.NoError(t, err, in)
		assert.Empty(t, snap, in)
	}
}

func TestParseOrganisations_SkipsUnnamed(t *testing.T) {
	snap, err := ParseOrganisations([]byte(`[{"sample_size": 3}, {"organisation": 7}, {"organisation": "A", "sample_size": 1}]`), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{"A": {SampleSize: 1}}, snap)
}

func TestParseOrganisations_StringCounts(t *testing.T) {
	in := `[{"organisation": "B", "sample_size": 5, "country": "BE",
	  "variable_info": [{"main_class": "c", "main_class_count": "5", "sub_class": "c", "sub_class_count": " 4 "}]}]`
	snap, err := ParseOrganisations([]byte(in), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, snap["B"].VariableInfo, 1)
	assert.Equal(t, 5, snap["B"].VariableInfo[0].MainClassCount)
	assert.Equal(t, 4, snap["B"].VariableInfo[0].SubClassCount)
}

func TestParseOrganisations_BadItemKeepsOthers(t *testing.T) {
	in := `[
	  {"organisation": "A", "sample_size": 12, "country": "NL"},
	  {"organisation": "B", "sample_size": 5, "country": "BE", "variable_info": "not a list"},
	  {"organisation": "C", "sample_size": 3, "country": ["ES"]}
	]`
	core, logs := observer.New(zap.WarnLevel)
	snap, err := ParseOrganisations([]byte(in), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, models.Snapshot{"A": {SampleSize: 12, Country: "NL"}}, snap)
	assert.Equal(t, 2, logs.FilterMessage("descriptives item skipped").Len())
}

func TestParseOrganisations_InvalidJSON(t *testing.T) {
	_, err := ParseOrganisations([]byte(`[{"organisation":`), zap.NewNop())
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 30, 0, 123456000, time.UTC)

	data := Append(nil, models.Snapshot{"A": {SampleSize: 1}}, now)
	require.Len(t, data, 1)
	_, ok := data["2024-05-01T08:30:00.123456"]
	assert.True(t, ok, "keys: %v", data)

	data = Append(data, models.Snapshot{"B": {SampleSize: 2}}, now.Add(time.Hour))
	assert.Len(t, data, 2)
	latest, _ := data.Latest()
	assert.Contains(t, latest, "B")
}

func TestTimestampParses(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	got, ok := models.ParseTimestamp(Timestamp(now))
	require.True(t, ok)
	assert.True(t, got.Equal(now))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockresult.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	src := FileSource{Path: path}
	b, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(b))
	assert.Equal(t, "file:"+path, src.Name())

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	b, err := HTTPSource{URL: srv.URL, Token: "s3cret", Client: srv.Client()}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.JSONEq(t, payload, string(b))
}

func TestHTTPSource_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := HTTPSource{URL: srv.URL}.Fetch(context.Background())
	assert.ErrorContains(t, err, "502")
}

func TestReadSecret(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "descriptives_token"), []byte("  tok \n"), 0o600))

	v, ok := ReadSecret(dir, "descriptives_token")
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	_, ok = ReadSecret(dir, "missing")
	assert.False(t, ok)
	_, ok = ReadSecret(dir, "../etc/passwd")
	assert.False(t, ok)
}
