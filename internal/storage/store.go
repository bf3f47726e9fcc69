// Package storage persists evaluation records behind a minimal save/load
// contract. The production deployment points this at an object store; the
// bundled implementation writes one JSON file per record so the API works
// out of the box.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autoqa-go/internal/types"
)

// Store is the record persistence collaborator.
type Store interface {
	Save(ctx context.Context, rec types.EvaluationRecord) error
	Load(ctx context.Context, evaluationID string) (types.EvaluationRecord, error)
}

// FileStore keeps one JSON document per evaluation under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Save(ctx context.Context, rec types.EvaluationRecord) error {
	if rec.EvaluationID == "" {
		return fmt.Errorf("record has no evaluation id")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(s.path(rec.EvaluationID), data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, evaluationID string) (types.EvaluationRecord, error) {
	var rec types.EvaluationRecord
	data, err := os.ReadFile(s.path(evaluationID))
	if err != nil {
		return rec, fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// path sanitizes the id so a crafted id cannot escape the records dir.
func (s *FileStore) path(id string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(id)
	return filepath.Join(s.dir, safe+".json")
}
