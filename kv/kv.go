// Package kv is the durable key-value substrate behind the quiz session
// store. Each visitor gets its own scope, the way browser storage is scoped
// to one origin.
package kv

import (
	"context"
	"errors"
	"sync"
)

var ErrQuotaExceeded = errors.New("kv: quota exceeded")

type Store interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type Scoper interface {
	Scope(id string) Store
}

// Memory keeps every scope in process memory. Nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	items map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: map[string]map[string]string{}}
}

func (m *Memory) Scope(id string) Store {
	return memoryScope{m, id}
}

type memoryScope struct {
	m  *Memory
	id string
}

func (s memoryScope) GetItem(_ context.Context, key string) (string, bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	v, ok := s.m.items[s.id][key]
	return v, ok, nil
}

func (s memoryScope) SetItem(_ context.Context, key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	scope := s.m.items[s.id]
	if scope == nil {
		scope = map[string]string{}
		s.m.items[s.id] = scope
	}
	scope[key] = value
	return nil
}

func (s memoryScope) RemoveItem(_ context.Context, key string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	delete(s.m.items[s.id], key)
	if len(s.m.items[s.id]) == 0 {
		delete(s.m.items, s.id)
	}
	return nil
}

// WithQuota rejects values longer than limit bytes. A limit <= 0 returns
// the scoper unchanged.
func WithQuota(sc Scoper, limit int) Scoper {
	if limit <= 0 {
		return sc
	}
	return quota{sc, limit}
}

type quota struct {
	Scoper
	limit int
}

func (q quota) Scope(id string) Store {
	return quotaStore{q.Scoper.Scope(id), q.limit}
}

type quotaStore struct {
	Store
	limit int
}

func (q quotaStore) SetItem(ctx context.Context, key, value string) error {
	if len(key)+len(value) > q.limit {
		return ErrQuotaExceeded
	}
	return q.Store.SetItem(ctx, key, value)
}
