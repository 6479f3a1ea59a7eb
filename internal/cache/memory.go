package cache

import (
	"context"
	"sync"
	"time"

	"jobpulse/pkg/models"
)

// memoryEntry pairs a job payload with its insertion time.
type memoryEntry struct {
	job     *models.NormalizedJob
	addedAt time.Time
}

// MemoryJobCache is a best-effort in-process L1 in front of Redis for job
// payloads. It is owned by the process lifecycle: construct it, Start it,
// Stop it on shutdown. The clock is injected so expiry is testable.
type MemoryJobCache struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	cancel   context.CancelFunc
}

// NewMemoryJobCache creates a cache with the given entry TTL and cleanup
// interval. A nil clock defaults to time.Now.
func NewMemoryJobCache(ttl, cleanupInterval time.Duration, clock func() time.Time) *MemoryJobCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryJobCache{
		entries:  make(map[string]memoryEntry),
		ttl:      ttl,
		interval: cleanupInterval,
		now:      clock,
	}
}

// Set stores a job payload.
func (m *MemoryJobCache) Set(jobID string, job *models.NormalizedJob) {
	if jobID == "" || job == nil {
		return
	}

	m.mu.Lock()
	m.entries[jobID] = memoryEntry{job: job, addedAt: m.now()}
	m.mu.Unlock()
}

// Get returns the cached job or nil. Expired entries are removed on read.
func (m *MemoryJobCache) Get(jobID string) *models.NormalizedJob {
	m.mu.RLock()
	entry, ok := m.entries[jobID]
	m.mu.RUnlock()

	if !ok {
		return nil
	}

	if m.now().Sub(entry.addedAt) > m.ttl {
		m.mu.Lock()
		delete(m.entries, jobID)
		m.mu.Unlock()
		return nil
	}

	return entry.job
}

// Cleanup removes all expired entries and returns how many were evicted.
func (m *MemoryJobCache) Cleanup() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, entry := range m.entries {
		if now.Sub(entry.addedAt) > m.ttl {
			delete(m.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live entries, expired or not.
func (m *MemoryJobCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Start launches the periodic cleanup loop. It returns immediately.
func (m *MemoryJobCache) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the cleanup loop.
func (m *MemoryJobCache) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}
