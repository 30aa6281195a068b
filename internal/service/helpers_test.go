package service

import (
	"alugaki/internal/events"
	"alugaki/internal/models"
	"alugaki/internal/repository"

	"github.com/rs/zerolog"
)

// seedGhostUser is not part of any roster; used for restore tests.
var seedGhostUser = models.User{ID: "77", Name: "Fantasma", Email: "ghost@email.com"}

type testEnv struct {
	repo     *repository.Marketplace
	sessions *repository.MemorySessionStore
	bus      *events.EventBus
	items    *ItemService
	chats    *ChatService
	users    *UserService
}

// newTestEnv wires the services against the built-in demo seed with zero
// mock latency.
func newTestEnv() *testEnv {
	logger := zerolog.Nop()
	repo := repository.NewMarketplace(repository.SeedUsers(), repository.SeedItems(), repository.SeedChats())
	sessions := repository.NewMemorySessionStore()
	bus := events.NewEventBus()

	items := NewItemService(repo, bus, 0, &logger)
	chats := NewChatService(repo, items, bus, 0, &logger)
	users := NewUserService(repo, sessions, bus, 0, &logger)

	return &testEnv{
		repo:     repo,
		sessions: sessions,
		bus:      bus,
		items:    items,
		chats:    chats,
		users:    users,
	}
}
