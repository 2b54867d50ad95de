package loginguard

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	attempts     int
	windowEnds   time.Time
	blockedUntil time.Time
}

// MemoryGuard учёт неудачных входов в памяти процесса (один инстанс, Redis не настроен)
type MemoryGuard struct {
	mu      sync.Mutex
	policy  Policy
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryGuard создает guard в памяти
func NewMemoryGuard(policy Policy) *MemoryGuard {
	return &MemoryGuard{
		policy:  normalize(policy),
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (g *MemoryGuard) Check(_ context.Context, key string) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e := g.entry(key, now)
	if e == nil {
		return g.policy.status(0, 0), nil
	}
	if now.Before(e.blockedUntil) {
		return g.policy.status(g.policy.MaxAttempts, e.blockedUntil.Sub(now)), nil
	}
	return g.policy.status(e.attempts, 0), nil
}

func (g *MemoryGuard) RegisterFailure(_ context.Context, key string) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e := g.entry(key, now)
	if e == nil {
		e = &memoryEntry{windowEnds: now.Add(g.policy.BlockFor)}
		g.entries[key] = e
	}

	e.attempts++
	if e.attempts >= g.policy.MaxAttempts {
		attempts := e.attempts
		e.attempts = 0
		e.blockedUntil = now.Add(g.policy.BlockFor)
		e.windowEnds = e.blockedUntil
		return g.policy.status(attempts, g.policy.BlockFor), nil
	}
	return g.policy.status(e.attempts, 0), nil
}

func (g *MemoryGuard) Reset(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.entries, key)
	return nil
}

// entry возвращает живую запись или nil, просроченные записи удаляются
func (g *MemoryGuard) entry(key string, now time.Time) *memoryEntry {
	e, ok := g.entries[key]
	if !ok {
		return nil
	}
	if !now.Before(e.windowEnds) && !now.Before(e.blockedUntil) {
		delete(g.entries, key)
		return nil
	}
	return e
}
