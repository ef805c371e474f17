// internal/domain/models/snapshot.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredSnapshot is one fetched snapshot as persisted in the snapshots
// collection.
type StoredSnapshot struct {
	ID            primitive.ObjectID `bson:"_id"`
	RunID         string             `bson:"run_id"`
	Timestamp     string             `bson:"timestamp"` // ISO key used in DescriptiveData
	FetchedAt     time.Time          `bson:"fetched_at"`
	Source        string             `bson:"source"`
	Organisations Snapshot           `bson:"organisations"`
	Raw           []byte             `bson:"raw,omitempty"` // snappy-compressed upstream payload
	RawSize       int                `bson:"raw_size"`
}

