package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/pkg/game"
)

// MockStorage is an in-memory Storage. It keeps encoded snapshots so a
// load goes through the same validation as the real stores.
type MockStorage struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]byte
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		snapshots: make(map[uuid.UUID][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetRaw stores raw bytes for id, e.g. to simulate a corrupt save.
func (m *MockStorage) SetRaw(id uuid.UUID, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = data
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSnapshot(ctx context.Context, id uuid.UUID, snap *game.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = data
	return nil
}

func (m *MockStorage) LoadSnapshot(ctx context.Context, id uuid.UUID) (*game.Snapshot, error) {
	m.mu.RLock()
	data, exists := m.snapshots[id]
	m.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	return DecodeSnapshot(data)
}

func (m *MockStorage) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}
