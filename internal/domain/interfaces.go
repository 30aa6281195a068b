package domain

import (
	"context"

	"alugaki/internal/models"
)

// MarketplaceRepository owns the in-memory catalog, roster and chat
// collections. Each call is atomic with respect to the shared collections.
type MarketplaceRepository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItemByID(ctx context.Context, id string) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	ListChats(ctx context.Context) ([]*models.Chat, error)
	ListChatsByParticipant(ctx context.Context, userID string) ([]*models.Chat, error)
	GetChatByID(ctx context.Context, id string) (*models.Chat, error)
	FindChat(ctx context.Context, itemID, initiatorID, ownerID string) (*models.Chat, error)
	CreateChat(ctx context.Context, chat *models.Chat) error
	AppendMessage(ctx context.Context, chatID string, msg *models.Message) error
}

// SessionStore keeps at most one durable record: the serialized active
// session user under a fixed well-known key. Load returns (nil, nil) when
// no record exists.
type SessionStore interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ItemDirectory is the slice of the item service the chat service needs to
// resolve an item's owner when opening a conversation.
type ItemDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Item, error)
}
