package snapshotstore_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	snapshotstore "github.com/STRONGAYA/Vantage6-data-managment-portal/internal/app/store/snapshots"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/domain/models"
	"github.com/STRONGAYA/Vantage6-data-managment-portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Latest_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Latest(ctx)
	if !errors.Is(err, snapshotstore.ErrNotFound) {
		t.Fatalf("Latest on empty collection: got %v, want ErrNotFound", err)
	}
}

func TestStore_AppendAndLatest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	first, err := store.Append(ctx, "file:a", models.Snapshot{"Old": {SampleSize: 1}}, nil, base)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := store.Append(ctx, "file:b", testutil.Snapshot(), []byte(`[]`), base.Add(time.Hour))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if first.RunID == second.RunID || second.RunID == "" {
		t.Errorf("expected distinct run ids, got %q and %q", first.RunID, second.RunID)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("Latest: got %v, want %v", latest.ID, second.ID)
	}
	if latest.Source != "file:b" {
		t.Errorf("Source: got %q", latest.Source)
	}
	if latest.Organisations["Utrecht"].SampleSize != 60 {
		t.Errorf("organisations not round-tripped: %+v", latest.Organisations)
	}
	if len(latest.Raw) != 0 {
		t.Errorf("Latest should not load the raw payload")
	}
}

func TestStore_Load(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := store.Append(ctx, "test", testutil.Snapshot(), nil, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	all, err := store.Load(ctx, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Load(0): got %d snapshots, want 3", len(all))
	}

	recent, err := store.Load(ctx, 2)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Load(2): got %d snapshots, want 2", len(recent))
	}
	key, _ := recent.LatestKey()
	if key != models.FormatTimestamp(base.Add(2*time.Hour)) {
		t.Errorf("latest key: got %q", key)
	}
	if _, ok := recent[models.FormatTimestamp(base)]; ok {
		t.Errorf("oldest snapshot should not be loaded with limit 2")
	}
}

func TestStore_Prune(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.Append(ctx, "test", models.Snapshot{}, nil, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	n, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Prune deleted %d, want 3", n)
	}
	count, _ := store.Count(ctx)
	if count != 2 {
		t.Errorf("remaining: got %d, want 2", count)
	}

	if n, _ := store.Prune(ctx, 0); n != 0 {
		t.Errorf("Prune(0) should be a no-op, deleted %d", n)
	}
}

func TestStore_Raw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := snapshotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	payload := bytes.Repeat([]byte(`{"organisation":"A","sample_size":1},`), 50)
	doc, err := store.Append(ctx, "test", models.Snapshot{}, payload, time.Now())
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if doc.RawSize != len(payload) {
		t.Errorf("RawSize: got %d, want %d", doc.RawSize, len(payload))
	}
	if len(doc.Raw) >= len(payload) {
		t.Errorf("raw payload not compressed: %d >= %d", len(doc.Raw), len(payload))
	}

	got, err := store.Raw(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Raw failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Raw: payload mismatch")
	}

	if _, err := store.Raw(ctx, primitive.NewObjectID()); !errors.Is(err, snapshotstore.ErrNotFound) {
		t.Errorf("Raw unknown id: got %v, want ErrNotFound", err)
	}
}
