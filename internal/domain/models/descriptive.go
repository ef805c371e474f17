// internal/domain/models/descriptive.go
package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// VariableCount is one class/sub-class tally reported by an organisation.
type VariableCount struct {
	MainClass      string `json:"main_class" bson:"main_class"`
	MainClassCount int    `json:"main_class_count" bson:"main_class_count"`
	SubClass       string `json:"sub_class" bson:"sub_class"`
	SubClassCount  int    `json:"sub_class_count" bson:"sub_class_count"`
}

// UnmarshalJSON accepts the counts as JSON numbers or numeric strings, like
// sample_size.
func (c *VariableCount) UnmarshalJSON(b []byte) error {
	var raw struct {
		MainClass      string          `json:"main_class"`
		MainClassCount json.RawMessage `json:"main_class_count"`
		SubClass       string          `json:"sub_class"`
		SubClassCount  json.RawMessage `json:"sub_class_count"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.MainClass = raw.MainClass
	c.MainClassCount = flexibleInt(raw.MainClassCount)
	c.SubClass = raw.SubClass
	c.SubClassCount = flexibleInt(raw.SubClassCount)
	return nil
}

// OrganisationRecord is the descriptive metadata one organisation contributes
// to a snapshot.
//
// VariableInfo is nil when the organisation reported no variable_info at all,
// which is different from an empty (but present) list.
type OrganisationRecord struct {
	SampleSize   int             `json:"sample_size" bson:"sample_size"`
	Country      string          `json:"country" bson:"country"`
	VariableInfo []VariableCount `json:"variable_info,omitempty" bson:"variable_info,omitempty"`
}

// UnmarshalJSON accepts sample_size as a JSON number or a numeric string.
func (r *OrganisationRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		SampleSize   json.RawMessage `json:"sample_size"`
		Country      string          `json:"country"`
		VariableInfo []VariableCount `json:"variable_info"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.SampleSize = flexibleInt(raw.SampleSize)
	r.Country = raw.Country
	r.VariableInfo = raw.VariableInfo
	return nil
}

// flexibleInt reads an integer that may have been serialised as a number or
// as a string. Anything unreadable counts as 0.
func flexibleInt(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(v)
		}
	}
	return 0
}

// Snapshot maps organisation name to the record captured at one timestamp.
type Snapshot map[string]OrganisationRecord

// Organisations returns the organisation names sorted ascending.
func (s Snapshot) Organisations() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DescriptiveData maps an ISO timestamp to the snapshot fetched at that time.
type DescriptiveData map[string]Snapshot

// TimestampLayout is the key format written for new snapshots: ISO 8601
// with microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp formats t as a DescriptiveData key.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// isoLayouts are the timestamp shapes written by the fetchers (Python's
// isoformat without zone, and RFC 3339).
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a snapshot key.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestKey returns the key of the most recent snapshot. Keys are compared
// as timestamps when all of them parse, and as strings otherwise.
func (d DescriptiveData) LatestKey() (string, bool) {
	if len(d) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	times := make(map[string]time.Time, len(keys))
	for _, k := range keys {
		t, ok := ParseTimestamp(k)
		if !ok {
			return keys[len(keys)-1], true
		}
		times[k] = t
	}

	latest := keys[0]
	for _, k := range keys[1:] {
		if !times[k].Before(times[latest]) {
			latest = k
		}
	}
	return latest, true
}

// Latest returns the most recent snapshot. ok is false when there is no data.
func (d DescriptiveData) Latest() (Snapshot, bool) {
	k, ok := d.LatestKey()
	if !ok {
		return nil, false
	}
	return d[k], true
}
