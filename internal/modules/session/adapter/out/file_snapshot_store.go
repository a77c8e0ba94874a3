package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"firstthought/internal/modules/session/domain"
	sessionout "firstthought/internal/modules/session/port/out"
)

type snapshot struct {
	Version int `json:"version"`
	domain.Collection
}

type FileSnapshotStore struct {
	mu   sync.Mutex
	path string
}

func NewFileSnapshotStore(path string) sessionout.SnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(_ context.Context) (domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Collection{}, nil
		}
		return domain.Collection{}, fmt.Errorf("read sessions: %w", err)
	}
	snap := snapshot{}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.Collection{}, fmt.Errorf("decode sessions: %w", err)
	}
	if snap.Version > domain.SchemaVersion {
		return domain.Collection{}, fmt.Errorf("sessions version %d is newer than supported %d", snap.Version, domain.SchemaVersion)
	}
	for i := range snap.Sessions {
		if snap.Sessions[i].TaggedAt.IsZero() {
			snap.Sessions[i].TaggedAt = snap.Sessions[i].CreatedAt
		}
	}
	return snap.Collection, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, collection domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if collection.Sessions == nil {
		collection.Sessions = []domain.Session{}
	}
	if collection.TagFrequencies == nil {
		collection.TagFrequencies = []domain.TagFrequency{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot{Version: domain.SchemaVersion, Collection: collection}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace sessions: %w", err)
	}
	return nil
}
