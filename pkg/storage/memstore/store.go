// Package memstore is the embedded content store: an in-process record table
// with optional JSON snapshot persistence. It backs the default storage kind
// and doubles as the options backend for singular views.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tangibleinc/dataview/pkg/storage"
)

// Option configures a Store or a Settings store.
type Option func(*config)

type config struct {
	snapshotPath string
}

// WithSnapshotFile persists the store to a JSON file after every write and
// loads it on construction. Without it the store is purely in-memory.
func WithSnapshotFile(path string) Option {
	return func(cfg *config) {
		cfg.snapshotPath = path
	}
}

// Store implements storage.Adapter over an id-keyed map.
type Store struct {
	mu           sync.RWMutex
	records      map[int64]storage.Record
	nextID       int64
	snapshotPath string
}

type snapshot struct {
	NextID  int64                    `json:"next_id"`
	Records map[int64]storage.Record `json:"records"`
}

// New constructs a Store, loading the snapshot file when one is configured
// and present.
func New(options ...Option) (*Store, error) {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	s := &Store{
		records:      make(map[int64]storage.Record),
		nextID:       1,
		snapshotPath: cfg.snapshotPath,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Create assigns the next id and stores a copy of the record.
func (s *Store) Create(_ context.Context, record storage.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.records[id] = storage.Clone(record)
	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns a copy of the record, with its id included.
func (s *Store) Get(_ context.Context, id int64) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("memstore: id %d: %w", id, storage.ErrNotFound)
	}
	out := storage.Clone(record)
	out["id"] = id
	return out, nil
}

// List returns copies of every record ordered by id.
func (s *Store) List(_ context.Context) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]storage.Record, 0, len(ids))
	for _, id := range ids {
		record := storage.Clone(s.records[id])
		record["id"] = id
		out = append(out, record)
	}
	return out, nil
}

// Update replaces the stored field values for an existing id.
func (s *Store) Update(_ context.Context, id int64, record storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[id]
	if !ok {
		return fmt.Errorf("memstore: id %d: %w", id, storage.ErrNotFound)
	}
	for key, value := range record {
		if key == "id" {
			continue
		}
		stored[key] = value
	}
	return s.persistLocked()
}

// Delete removes a record.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("memstore: id %d: %w", id, storage.ErrNotFound)
	}
	delete(s.records, id)
	return s.persistLocked()
}

func (s *Store) load() error {
	if s.snapshotPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.snapshotPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("memstore: read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("memstore: decode snapshot: %w", err)
	}
	if snap.Records != nil {
		s.records = snap.Records
	}
	if snap.NextID > 0 {
		s.nextID = snap.NextID
	}
	return nil
}

func (s *Store) persistLocked() error {
	if s.snapshotPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(snapshot{NextID: s.nextID, Records: s.records}, "", "  ")
	if err != nil {
		return fmt.Errorf("memstore: encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("memstore: write snapshot: %w", err)
	}
	return nil
}
