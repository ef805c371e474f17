// internal/app/store/snapshots/snapshotstore.go
package snapshotstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding fetched snapshots.
const CollectionName = "snapshots"

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Store provides access to the snapshots collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new snapshot store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Append stores a parsed snapshot together with the raw upstream payload,
// which is kept snappy-compressed for later inspection.
func (s *Store) Append(ctx context.Context, source string, snap models.Snapshot, raw []byte, fetchedAt time.Time) (models.StoredSnapshot, error) {
	if snap == nil {
		snap = models.Snapshot{}
	}
	doc := models.StoredSnapshot{
		ID:            primitive.NewObjectID(),
		RunID:         uuid.NewString(),
		Timestamp:     models.FormatTimestamp(fetchedAt),
		FetchedAt:     fetchedAt.UTC(),
		Source:        source,
		Organisations: snap,
		RawSize:       len(raw),
	}
	if len(raw) > 0 {
		doc.Raw = snappy.Encode(nil, raw)
	}

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return doc, nil
}

// metaProjection leaves out the raw payload.
var metaProjection = bson.M{"raw": 0}

// Latest returns the most recently fetched snapshot (without its raw
// payload). ErrNotFound when the collection is empty.
func (s *Store) Latest(ctx context.Context) (models.StoredSnapshot, error) {
	var doc models.StoredSnapshot
	opts := options.FindOne().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(metaProjection)
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.StoredSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.StoredSnapshot{}, err
	}
	return doc, nil
}

// Load returns up to limit of the most recent snapshots as DescriptiveData.
// limit <= 0 loads everything.
func (s *Store) Load(ctx context.Context, limit int) (models.DescriptiveData, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(metaProjection)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	data := models.DescriptiveData{}
	for cur.Next(ctx) {
		var doc models.StoredSnapshot
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if _, dup := data[doc.Timestamp]; dup {
			continue
		}
		if doc.Organisations == nil {
			doc.Organisations = models.Snapshot{}
		}
		data[doc.Timestamp] = doc.Organisations
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Prune keeps the keep most recent snapshots and deletes the rest. It
// returns the number deleted. keep <= 0 disables pruning.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "fetched_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Raw returns the decompressed upstream payload of a snapshot.
func (s *Store) Raw(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	var doc struct {
		Raw []byte `bson:"raw"`
	}
	opts := options.FindOne().SetProjection(bson.M{"raw": 1})
	err := s.c.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Raw) == 0 {
		return nil, nil
	}
	out, err := snappy.Decode(nil, doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %s: %w", id.Hex(), err)
	}
	return out, nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
