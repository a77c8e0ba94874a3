package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"firstthought/internal/modules/timer/domain"
	timerout "firstthought/internal/modules/timer/port/out"
)

type stateEnvelope struct {
	Version int          `json:"version"`
	State   domain.State `json:"state"`
}

// FileStateStore keeps the timer in a small JSON file so a run survives a
// process restart.
type FileStateStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStateStore(path string) timerout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(_ context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewState(), nil
		}
		return domain.State{}, fmt.Errorf("read timer state: %w", err)
	}
	envelope := stateEnvelope{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return domain.State{}, fmt.Errorf("decode timer state: %w", err)
	}
	if envelope.Version > domain.SchemaVersion {
		return domain.State{}, fmt.Errorf("timer state version %d is newer than supported %d", envelope.Version, domain.SchemaVersion)
	}
	state := envelope.State
	switch state.Status {
	case domain.StatusRunning, domain.StatusCompleted:
	default:
		state.Status = domain.StatusIdle
	}
	return state, nil
}

func (s *FileStateStore) Save(_ context.Context, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create timer state dir: %w", err)
	}
	payload, err := json.MarshalIndent(stateEnvelope{Version: domain.SchemaVersion, State: state}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timer state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write timer state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace timer state: %w", err)
	}
	return nil
}
