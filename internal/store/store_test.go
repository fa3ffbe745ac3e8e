package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fedorgrin-lab/cloud/internal/model"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "cloud-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestKV_GetMissing(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	kv := NewKV(db)
	_, err := kv.Get(context.Background(), "cloud:users")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get on empty store: want ErrKeyNotFound, got %v", err)
	}
}

func TestKV_SetGet(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	kv := NewKV(db)
	ctx := context.Background()

	if err := kv.Set(ctx, "cloud:sites", []byte(`[{"id":"s1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := kv.Get(ctx, "cloud:sites")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":"s1"}]` {
		t.Errorf("Get = %q, want stored value", got)
	}
}

func TestKV_SetOverwrites(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	kv := NewKV(db)
	ctx := context.Background()

	if err := kv.Set(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get after overwrite = %q, want %q", got, "second")
	}
}

func TestKV_Delete(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	kv := NewKV(db)
	ctx := context.Background()

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get after delete: want ErrKeyNotFound, got %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := kv.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestEventLog_AddAndList(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	log := NewEventLog(db)
	ctx := context.Background()

	events := []model.Event{
		{Level: model.EventLevelInfo, Category: model.EventCategoryAuth, Message: "user logged in"},
		{Level: model.EventLevelWarning, Category: model.EventCategorySuggest, Message: "suggestion failed"},
		{Level: model.EventLevelError, Category: model.EventCategorySystem, Message: "database error"},
	}
	for i, ev := range events {
		ev.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := log.Add(ctx, ev); err != nil {
			t.Fatalf("Add event %d: %v", i, err)
		}
	}

	got, err := log.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListRecent returned %d events, want 3", len(got))
	}
	// Newest first.
	if got[0].Message != "database error" {
		t.Errorf("first event = %q, want newest", got[0].Message)
	}
	if got[2].Message != "user logged in" {
		t.Errorf("last event = %q, want oldest", got[2].Message)
	}
}

func TestEventLog_ListRecentLimit(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	log := NewEventLog(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ev := model.Event{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySite,
			Message:   "site created",
			CreatedAt: time.Now(),
		}
		if err := log.Add(ctx, ev); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err := log.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListRecent(2) returned %d events, want 2", len(got))
	}
}

func TestEventLog_EmptyMetadataDefaults(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	log := NewEventLog(db)
	ctx := context.Background()

	ev := model.Event{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "startup",
		CreatedAt: time.Now(),
	}
	if err := log.Add(ctx, ev); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := log.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListRecent returned %d events, want 1", len(got))
	}
	if got[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want empty JSON object", got[0].Metadata)
	}
}
