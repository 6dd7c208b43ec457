package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	precompiled string
	expiresAt   time.Time
}

func (m memoryEntry) expired(now time.Time) bool {
	return !m.expiresAt.IsZero() && !now.Before(m.expiresAt)
}

// Memory is an in-process Store
type Memory struct {
	entries map[string]memoryEntry
	now     func() time.Time
	mu      sync.RWMutex
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save stores a precompiled template
func (m *Memory) Save(_ context.Context, name, precompiled string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = memoryEntry{precompiled: precompiled}
	return nil
}

// Load loads a precompiled template
func (m *Memory) Load(_ context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[name]
	if !ok || entry.expired(m.now()) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entry.precompiled, nil
}

// Delete deletes a precompiled template
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
	return nil
}

// Exists checks if a precompiled template is stored
func (m *Memory) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[name]
	return ok && !entry.expired(m.now()), nil
}

// List returns the sorted names of the live templates
func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	names := make([]string, 0, len(m.entries))
	for name, entry := range m.entries {
		if !entry.expired(now) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// SetTTL sets a time-to-live for a stored template
func (m *Memory) SetTTL(_ context.Context, name string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[name]
	if !ok || entry.expired(m.now()) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	entry.expiresAt = m.now().Add(ttl)
	m.entries[name] = entry

	return nil
}
