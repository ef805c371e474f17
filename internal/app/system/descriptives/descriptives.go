// Package descriptives acquires descriptive metadata snapshots: it fetches
// the per-organisation payload from a source, parses it into a Snapshot and
// appends it to the time-keyed collection.
package descriptives

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"go.uber.org/zap"
)

// ParseOrganisations converts the upstream payload, a JSON list of
// {"organisation": ..., "sample_size": ..., "country": ..., "variable_info": [...]}
// items, into a Snapshot keyed by organisation.
//
// A payload that is not a list, or a list containing anything other than
// objects, yields an empty snapshot. Items without an organisation name are
// skipped, and so is an item that cannot be decoded (it is logged; the other
// organisations are kept). Only malformed JSON is an error.
func ParseOrganisations(raw []byte, logger *zap.Logger) (models.Snapshot, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("descriptives: payload is not valid JSON")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return models.Snapshot{}, nil
	}
	for _, item := range items {
		if !isObject(item) {
			return models.Snapshot{}, nil
		}
	}

	snap := make(models.Snapshot, len(items))
	for i, item := range items {
		var head struct {
			Organisation json.RawMessage `json:"organisation"`
		}
		_ = json.Unmarshal(item, &head)
		var name string
		if err := json.Unmarshal(head.Organisation, &name); err != nil || name == "" {
			logger.Warn("descriptives item without organisation name skipped", zap.Int("index", i))
			continue
		}

		var rec models.OrganisationRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			logger.Warn("descriptives item skipped",
				zap.Int("index", i),
				zap.String("organisation", name),
				zap.Error(err))
			continue
		}
		snap[name] = rec
	}
	return snap, nil
}

func isObject(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// Timestamp formats t as a DescriptiveData key.
func Timestamp(t time.Time) string {
	return models.FormatTimestamp(t)
}

// Append adds snap to data under the timestamp of now and returns data. A
// nil data allocates a new collection.
func Append(data models.DescriptiveData, snap models.Snapshot, now time.Time) models.DescriptiveData {
	if data == nil {
		data = models.DescriptiveData{}
	}
	data[Timestamp(now)] = snap
	return data
}
