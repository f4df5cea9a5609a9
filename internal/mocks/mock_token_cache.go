package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/timetablesvc/domain"
)

// MockTokenCache implements domain.TokenCache for testing. With no Func
// fields set it behaves as an in-memory cache without TTL enforcement.
type MockTokenCache struct {
	PutFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string) (string, error)
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	entries map[string]string
	// TTLs records the ttl passed to each Put, for assertions.
	TTLs map[string]time.Duration
}

// NewMockTokenCache creates a new MockTokenCache
func NewMockTokenCache() *MockTokenCache {
	return &MockTokenCache{
		entries: make(map[string]string),
		TTLs:    make(map[string]time.Duration),
	}
}

func (m *MockTokenCache) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *MockTokenCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return value, nil
}

func (m *MockTokenCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Contains reports whether a key is present, for assertions.
func (m *MockTokenCache) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// Keys returns a snapshot of all stored keys.
func (m *MockTokenCache) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}
