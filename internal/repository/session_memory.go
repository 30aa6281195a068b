package repository

import (
	"context"
	"sync"

	"alugaki/internal/models"
)

// MemorySessionStore keeps the session record in process memory. Used in
// tests and as the failover fallback.
type MemorySessionStore struct {
	mu   sync.RWMutex
	user *models.User
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	user := *s.user
	return &user, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.user = &cp
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
