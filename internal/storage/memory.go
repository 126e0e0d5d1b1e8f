package storage

import "sync"

// Memory is an in-memory Store for tests and throwaway sessions.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[keyToken]
	return v, ok
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyToken] = token
	return nil
}

func (m *Memory) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, keyToken)
	return nil
}

func (m *Memory) FavoriteIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[keyFavoriteIDs]
	if !ok {
		return nil
	}
	return decodeIDs(raw)
}

func (m *Memory) SetFavoriteIDs(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyFavoriteIDs] = encodeIDs(ids)
	return nil
}

func (m *Memory) DeleteFavoriteIDs() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, keyFavoriteIDs)
	return nil
}

// HasFavoriteIDs reports whether the favorite-ID key is present at all,
// which tests use to tell "cleared" from "empty".
func (m *Memory) HasFavoriteIDs() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[keyFavoriteIDs]
	return ok
}
