// Package history keeps the newest-first log of completed audits and the
// persisted slot that backs it.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/kiranshivaraju/reportaudit/internal/storage"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"go.uber.org/zap"
)

var (
	// ErrPersist wraps a failed slot write. The in-memory log is unchanged.
	ErrPersist = errors.New("history could not be persisted")
	// ErrNotLoaded is returned by Append before a Load has succeeded.
	ErrNotLoaded = errors.New("history has not been loaded")
	ErrNotFound  = errors.New("history item not found")
)

// Store owns the history log. The persisted slot is the durable copy;
// the in-memory slice is rebuilt from it by Load.
type Store struct {
	kv     storage.KV
	slot   string
	logger *zap.Logger

	mu     sync.RWMutex
	items  []models.ReportHistoryItem
	loaded bool
}

// New creates a Store over the given slot. Call Load before Append.
func New(kv storage.KV, slot string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, slot: slot, logger: logger}
}

// Load reads the slot and replaces the in-memory log. A missing slot yields an
// empty log. Corrupt data is logged and discarded. Only backend failures are
// returned as errors.
func (s *Store) Load(ctx context.Context) ([]models.ReportHistoryItem, error) {
	data, found, err := s.kv.Get(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("read history slot %q: %w", s.slot, err)
	}

	var items []models.ReportHistoryItem
	if found {
		if err := json.Unmarshal(data, &items); err != nil {
			s.logger.Warn("discarding unreadable history",
				zap.String("slot", s.slot),
				zap.Int("bytes", len(data)),
				zap.Error(err),
			)
			items = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.loaded = true
	return slices.Clone(s.items), nil
}

// Append prepends item, writes the full log to the slot and returns the new
// log. If the write fails the visible log is left as it was.
func (s *Store) Append(ctx context.Context, item models.ReportHistoryItem) ([]models.ReportHistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, ErrNotLoaded
	}

	next := make([]models.ReportHistoryItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)

	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.kv.Set(ctx, s.slot, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.items = next
	return slices.Clone(s.items), nil
}

// Clear removes the slot entirely and empties the log. Clearing an empty
// log is not an error.
func (s *Store) Clear(ctx context.Context) ([]models.ReportHistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.slot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.items = nil
	s.loaded = true
	return []models.ReportHistoryItem{}, nil
}

// Items returns a copy of the current log, newest first.
func (s *Store) Items() []models.ReportHistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (models.ReportHistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.ReportHistoryItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Loaded reports whether a Load (or Clear) has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Ping checks that the backing slot store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
