package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"firstthought/internal/modules/achievement/domain"
	achievementout "firstthought/internal/modules/achievement/port/out"
)

type ledgerSnapshot struct {
	Version int `json:"version"`
	domain.Ledger
}

type FileLedgerStore struct {
	mu   sync.Mutex
	path string
}

func NewFileLedgerStore(path string) achievementout.LedgerStore {
	return &FileLedgerStore{path: path}
}

func (s *FileLedgerStore) Load(_ context.Context) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Ledger{}, nil
		}
		return domain.Ledger{}, fmt.Errorf("read achievements: %w", err)
	}
	snapshot := ledgerSnapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Ledger{}, fmt.Errorf("decode achievements: %w", err)
	}
	if snapshot.Version > domain.SchemaVersion {
		return domain.Ledger{}, fmt.Errorf("achievements version %d is newer than supported %d", snapshot.Version, domain.SchemaVersion)
	}
	return snapshot.Ledger, nil
}

func (s *FileLedgerStore) Save(_ context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ledger.UnlockedMilestones == nil {
		ledger.UnlockedMilestones = []domain.UnlockedMilestone{}
	}
	if ledger.PersonalRecords == nil {
		ledger.PersonalRecords = []domain.PersonalRecord{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create achievements dir: %w", err)
	}
	payload, err := json.MarshalIndent(ledgerSnapshot{Version: domain.SchemaVersion, Ledger: ledger}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write achievements: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace achievements: %w", err)
	}
	return nil
}
