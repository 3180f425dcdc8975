// Package storage provides the key-value slot the history log is persisted
// in, plus its backends. A slot is written and removed as a whole.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is the persistence interface. All slot reads and writes go through here.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key; found is false when the key does not exist.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// MemoryKV is an in-process KV, used for ephemeral sessions and tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Ping(_ context.Context) error { return nil }
func (m *MemoryKV) Close() error                 { return nil }

var (
	_ KV = (*MemoryKV)(nil)
	_ KV = (*FileKV)(nil)
	_ KV = (*RedisKV)(nil)
	_ KV = (*PostgresKV)(nil)
	_ KV = (*SQLKV)(nil)
	_ KV = (*MinioKV)(nil)
)
