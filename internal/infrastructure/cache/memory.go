package cache

import (
	"context"
	"sync"
	"time"

	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		now:   time.Now,
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: ms.now().Add(expiration),
	}
}

// SetNX stores the pair only when key is absent or expired
func (ms *MemoryStore) SetNX(key string, value string, expiration time.Duration) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if item, exists := ms.items[key]; exists && !now.After(item.expireTime) {
		return false
	}
	ms.items[key] = &memoryItem{value: value, expireTime: now.Add(expiration)}
	return true
}

// Get retrieves a value by key (returns empty string if not found or expired)
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return "", false
	}

	if ms.now().After(item.expireTime) {
		return "", false
	}

	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := ms.now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}

// MemoryLocker serializes analyses within a single process when Redis is not configured
type MemoryLocker struct {
	store *MemoryStore
}

var _ repo.Locker = (*MemoryLocker)(nil)

// NewMemoryLocker creates a locker on top of a memory store
func NewMemoryLocker(store *MemoryStore) *MemoryLocker {
	return &MemoryLocker{store: store}
}

// TryLock acquires key for ttl
func (l *MemoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return l.store.SetNX(key, "1", ttl), nil
}

// Unlock releases key
func (l *MemoryLocker) Unlock(_ context.Context, key string) error {
	l.store.Delete(key)
	return nil
}
