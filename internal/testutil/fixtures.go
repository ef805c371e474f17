package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
)

// Class URIs used by the fixtures.
const (
	NCIT        = "http://ncicb.nci.nih.gov/xml/owl/EVS/Thesaurus.owl#"
	SexClass    = NCIT + "C28421"
	MaleClass   = NCIT + "C20197"
	FemaleClass = NCIT + "C16576"
	AgeClass    = NCIT + "C25150"
)

// Schema returns a small global schema: sex (male, female) and
// biological_age.
func Schema() models.GlobalSchema {
	return models.GlobalSchema{Variables: []models.Variable{
		{
			Name:  "sex",
			Class: "ncit:C28421",
			Values: []models.ValueTerm{
				{Name: "male", TargetClass: "ncit:C20197"},
				{Name: "female", TargetClass: "ncit:C16576"},
			},
		},
		{Name: "biological_age", Class: "ncit:C25150"},
	}}
}

// Snapshot returns a two-organisation snapshot matching Schema.
func Snapshot() models.Snapshot {
	return models.Snapshot{
		"Utrecht": {
			SampleSize: 60, Country: "NL",
			VariableInfo: []models.VariableCount{
				{MainClass: SexClass, MainClassCount: 60, SubClass: SexClass, SubClassCount: 60},
				{MainClass: SexClass, MainClassCount: 60, SubClass: MaleClass, SubClassCount: 35},
				{MainClass: SexClass, MainClassCount: 60, SubClass: FemaleClass, SubClassCount: 20},
				{MainClass: AgeClass, MainClassCount: 58, SubClass: AgeClass, SubClassCount: 58},
			},
		},
		"Leuven": {
			SampleSize: 40, Country: "BE",
			VariableInfo: []models.VariableCount{
				{MainClass: SexClass, MainClassCount: 40, SubClass: SexClass, SubClassCount: 40},
				{MainClass: SexClass, MainClassCount: 40, SubClass: FemaleClass, SubClassCount: 40},
			},
		},
	}
}

// Data returns DescriptiveData holding Snapshot under a fixed timestamp.
func Data() models.DescriptiveData {
	return models.DescriptiveData{"2024-05-01T08:00:00.000000": Snapshot()}
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// InsertSnapshot stores snap directly in the snapshots collection.
func (f *Fixtures) InsertSnapshot(ctx context.Context, snap models.Snapshot, fetchedAt time.Time) models.StoredSnapshot {
	f.t.Helper()

	doc := models.StoredSnapshot{
		ID:            primitive.NewObjectID(),
		RunID:         "fixture",
		Timestamp:     models.FormatTimestamp(fetchedAt),
		FetchedAt:     fetchedAt.UTC(),
		Source:        "fixture",
		Organisations: snap,
	}
	if _, err := f.db.Collection("snapshots").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test snapshot: %v", err)
	}
	return doc
}
