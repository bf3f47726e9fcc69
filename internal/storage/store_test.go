package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"autoqa-go/internal/types"
)

func TestFileStoreRoundtrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	rec := types.EvaluationRecord{
		EvaluationID: "EVAL-test-1",
		Metadata:     types.CallMetadata{CallID: "CALL-1", AgentName: "Priya Sharma"},
		Overall:      types.Overall{Score: 80.2, Grade: "B - Good"},
	}
	ctx := context.Background()
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "EVAL-test-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Overall != rec.Overall || got.Metadata.AgentName != rec.Metadata.AgentName {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestFileStoreMissingRecord(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Load(context.Background(), "EVAL-does-not-exist"); err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestFileStoreRejectsEmptyID(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(context.Background(), types.EvaluationRecord{}); err == nil {
		t.Fatal("expected error for record without id")
	}
}

func TestFileStoreSanitizesID(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	ctx := context.Background()
	rec := types.EvaluationRecord{EvaluationID: "../escape/EVAL-1"}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file inside the store dir, got %d", len(entries))
	}
	if filepath.Dir(filepath.Join(dir, entries[0].Name())) != dir {
		t.Fatalf("record escaped the store dir: %s", entries[0].Name())
	}

	if _, err := store.Load(ctx, "../escape/EVAL-1"); err != nil {
		t.Fatalf("sanitized load: %v", err)
	}
}
