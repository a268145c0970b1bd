package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process tile cache with LRU eviction, used when no Valkey
// server is configured.
//
// Size accounting counts value bytes plus the key; map and list overhead is
// not included.
type Memory struct {
	maxBytes  int64 // 0 means unlimited
	usedBytes int64
	entries   map[string]*memoryEntry
	lru       *list.List // most recent at front
	hits      int64
	misses    int64
	now       func() time.Time
	mu        sync.Mutex
}

type memoryEntry struct {
	key       string
	value     []byte
	size      int64
	expiresAt time.Time // zero means no expiry
	element   *list.Element
}

// NewMemory creates a memory cache holding at most maxBytes.
func NewMemory(maxBytes int64) *Memory {
	return &Memory{
		maxBytes: maxBytes,
		entries:  make(map[string]*memoryEntry),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get returns a cached value, or ErrMiss when it is absent or expired.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.remove(entry)
		m.misses++
		return nil, ErrMiss
	}

	m.hits++
	m.lru.MoveToFront(entry.element)
	return entry.value, nil
}

// Set stores a value, evicting least recently used entries to make room. A
// zero TTL stores it without expiry.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	size := int64(len(key) + len(value))
	if m.maxBytes > 0 && size > m.maxBytes {
		return fmt.Errorf("value too large for cache (%d bytes > %d bytes max)", size, m.maxBytes)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key]; ok {
		m.remove(entry)
	}

	if m.maxBytes > 0 {
		for m.usedBytes+size > m.maxBytes && m.lru.Len() > 0 {
			m.remove(m.lru.Back().Value.(*memoryEntry))
		}
	}

	entry := &memoryEntry{
		key:       key,
		value:     append([]byte(nil), value...),
		size:      size,
		expiresAt: expiresAt,
	}
	entry.element = m.lru.PushFront(entry)
	m.entries[key] = entry
	m.usedBytes += size

	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// remove must be called with m.mu held.
func (m *Memory) remove(entry *memoryEntry) {
	m.lru.Remove(entry.element)
	delete(m.entries, entry.key)
	m.usedBytes -= entry.size
}

// Stats returns cache statistics.
func (m *Memory) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MemoryStats{
		Entries:   len(m.entries),
		UsedBytes: m.usedBytes,
		MaxBytes:  m.maxBytes,
		Hits:      m.hits,
		Misses:    m.misses,
	}
}

// MemoryStats holds memory cache counters.
type MemoryStats struct {
	Entries   int
	UsedBytes int64
	MaxBytes  int64
	Hits      int64
	Misses    int64
}

// HitRate returns hits over lookups, 0 before the first lookup.
func (s MemoryStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
