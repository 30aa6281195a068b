package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"alugaki/internal/domain"
	"alugaki/internal/events"
	"alugaki/internal/metrics"
	"alugaki/internal/models"

	"github.com/rs/zerolog"
)

// UserService handles the mock credential-less login flow against the
// roster and keeps the active session user, mirrored into the injected
// session store so it survives restarts.
type UserService struct {
	repo     domain.MarketplaceRepository
	sessions domain.SessionStore
	eventBus domain.EventPublisher
	latency  time.Duration
	logger   *zerolog.Logger

	mu      sync.RWMutex
	current *models.User
}

func NewUserService(repo domain.MarketplaceRepository, sessions domain.SessionStore, eventBus domain.EventPublisher, latency time.Duration, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		eventBus: eventBus,
		latency:  latency,
		logger:   logger,
	}
}

// Login finds a roster user by exact email match and makes it the active
// session user. The password is accepted but never verified: there is no
// backend to check it against, and credential checking is out of scope.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	simulateLatency(s.latency)
	metrics.IncOp("users", "login")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.setCurrent(user)
	if err := s.sessions.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session user")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	_ = s.eventBus.PublishJSON(events.EventUserLoggedIn, events.UserEventPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	return user, nil
}

// Register appends a new user to the roster and logs it in. Fails with
// ErrEmailExists when the email is already registered.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	simulateLatency(s.latency)
	metrics.IncOp("users", "register")

	user := &models.User{
		Name:      name,
		Email:     email,
		Avatar:    placeholderAvatar(email),
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.setCurrent(user)
	if err := s.sessions.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session user")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	_ = s.eventBus.PublishJSON(events.EventUserRegistered, events.UserEventPayload{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	return user, nil
}

// Logout clears the active session user and removes the durable record.
// It has no error conditions.
func (s *UserService) Logout(ctx context.Context) {
	metrics.IncOp("users", "logout")

	user := s.Current()

	s.setCurrent(nil)
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session record")
	}

	if user != nil {
		_ = s.eventBus.PublishJSON(events.EventUserLoggedOut, events.UserEventPayload{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		})
	}
}

// Restore loads a previously persisted session user on process start. The
// record is trusted as-is, without re-validation against the roster.
func (s *UserService) Restore(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.setCurrent(user)
	}
	return user, nil
}

// Current returns a copy of the active session user, or nil.
func (s *UserService) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// GetByID looks a user up in the roster.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	simulateLatency(s.latency)
	metrics.IncOp("users", "get")
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) setCurrent(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.current = nil
		return
	}
	cp := *user
	s.current = &cp
}

// placeholderAvatar picks a stable pravatar image from the email, keeping
// avatar assignment independent of roster size.
func placeholderAvatar(email string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return fmt.Sprintf("https://i.pravatar.cc/150?img=%d", h.Sum32()%70+1)
}
