package repository

import (
	"context"
	"sync/atomic"
	"time"

	"alugaki/internal/domain"
	"alugaki/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSessionStore serves from the primary store until it errors, then
// falls back to the secondary and probes the primary again after a minute.
type FailoverSessionStore struct {
	primary   domain.SessionStore
	fallback  domain.SessionStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSessionStore(primary, fallback domain.SessionStore, logger *zerolog.Logger) *FailoverSessionStore {
	return &FailoverSessionStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverSessionStore) Load(ctx context.Context) (*models.User, error) {
	if !s.isDown.Load() {
		user, err := s.primary.Load(ctx)
		if err == nil {
			return user, nil
		}
		s.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
		s.isDown.Store(true)
		s.lastCheck = time.Now()
	}

	if s.isDown.Load() && time.Since(s.lastCheck) > time.Minute {
		user, err := s.primary.Load(ctx)
		if err == nil {
			s.isDown.Store(false)
			return user, nil
		}
		s.lastCheck = time.Now()
	}

	return s.fallback.Load(ctx)
}

func (s *FailoverSessionStore) Save(ctx context.Context, user *models.User) error {
	if !s.isDown.Load() {
		err := s.primary.Save(ctx, user)
		if err == nil {
			// Keep the fallback warm so a later failover still sees the session.
			_ = s.fallback.Save(ctx, user)
			return nil
		}
		s.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
		s.isDown.Store(true)
		s.lastCheck = time.Now()
	}

	return s.fallback.Save(ctx, user)
}

func (s *FailoverSessionStore) Clear(ctx context.Context) error {
	var primaryErr error
	if !s.isDown.Load() {
		primaryErr = s.primary.Clear(ctx)
		if primaryErr != nil {
			s.logger.Error().Err(primaryErr).Msg("Primary session store failed, falling back to memory")
			s.isDown.Store(true)
			s.lastCheck = time.Now()
		}
	}

	return s.fallback.Clear(ctx)
}
