package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/tangibleinc/dataview/pkg/storage"
)

// Settings implements storage.SettingsAdapter for one settings-like record.
type Settings struct {
	mu           sync.RWMutex
	record       storage.Record
	snapshotPath string
}

// NewSettings constructs a Settings store, loading the snapshot file when
// one is configured and present.
func NewSettings(options ...Option) (*Settings, error) {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	s := &Settings{
		record:       make(storage.Record),
		snapshotPath: cfg.snapshotPath,
	}
	if s.snapshotPath != "" {
		data, err := os.ReadFile(s.snapshotPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("memstore: read settings snapshot: %w", err)
		default:
			if err := json.Unmarshal(data, &s.record); err != nil {
				return nil, fmt.Errorf("memstore: decode settings snapshot: %w", err)
			}
		}
	}
	return s, nil
}

// Read returns a copy of the stored record; empty when nothing has been
// written yet.
func (s *Settings) Read(_ context.Context) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Clone(s.record), nil
}

// Write merges the supplied values into the stored record.
func (s *Settings) Write(_ context.Context, record storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range record {
		s.record[key] = value
	}

	if s.snapshotPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.record, "", "  ")
	if err != nil {
		return fmt.Errorf("memstore: encode settings snapshot: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("memstore: write settings snapshot: %w", err)
	}
	return nil
}
