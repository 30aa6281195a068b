package service

import (
	"context"
	"time"

	"alugaki/internal/domain"
	"alugaki/internal/events"
	"alugaki/internal/metrics"
	"alugaki/internal/models"

	"github.com/rs/zerolog"
)

// ChatService manages per-item conversations. A chat always holds exactly
// two participants: the item owner and the initiator, and creation is
// idempotent per (item, initiator) pair.
type ChatService struct {
	repo     domain.MarketplaceRepository
	items    domain.ItemDirectory
	eventBus domain.EventPublisher
	latency  time.Duration
	logger   *zerolog.Logger
}

func NewChatService(repo domain.MarketplaceRepository, items domain.ItemDirectory, eventBus domain.EventPublisher, latency time.Duration, logger *zerolog.Logger) *ChatService {
	return &ChatService{
		repo:     repo,
		items:    items,
		eventBus: eventBus,
		latency:  latency,
		logger:   logger,
	}
}

// ListForUser returns every chat the user participates in.
func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	simulateLatency(s.latency)
	metrics.IncOp("chats", "list")
	return s.repo.ListChatsByParticipant(ctx, userID)
}

// All returns every conversation. Used by the export reporter, so it skips
// the mock latency.
func (s *ChatService) All(ctx context.Context) ([]*models.Chat, error) {
	return s.repo.ListChats(ctx)
}

func (s *ChatService) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	simulateLatency(s.latency)
	metrics.IncOp("chats", "get")
	return s.repo.GetChatByID(ctx, id)
}

// Create opens a conversation about an item. The item is resolved through
// the item directory to pick up its owner snapshot. When a chat for the
// same (item, initiator, owner) triple already exists it is returned
// unchanged instead of creating a duplicate.
func (s *ChatService) Create(ctx context.Context, itemID string, initiator models.User) (*models.Chat, error) {
	simulateLatency(s.latency)
	metrics.IncOp("chats", "create")

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindChat(ctx, itemID, initiator.ID, item.Owner.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	chat := &models.Chat{
		ItemID:       itemID,
		Participants: []models.User{initiator, item.Owner},
		Messages:     []models.Message{},
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("chat_id", chat.ID).
		Str("item_id", itemID).
		Str("initiator_id", initiator.ID).
		Msg("chat created")

	_ = s.eventBus.PublishJSON(events.EventChatCreated, events.ChatEventPayload{
		ChatID:      chat.ID,
		ItemID:      itemID,
		InitiatorID: initiator.ID,
		OwnerID:     item.Owner.ID,
	})

	return chat, nil
}

// SendMessage appends a message to the chat's chronological list. The
// sender is not checked against the participant set.
func (s *ChatService) SendMessage(ctx context.Context, chatID string, sender models.User, content string) (*models.Message, error) {
	simulateLatency(s.latency)
	metrics.IncOp("chats", "send_message")

	msg := &models.Message{
		ChatID:    chatID,
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now(),
		Read:      false,
	}

	if err := s.repo.AppendMessage(ctx, chatID, msg); err != nil {
		return nil, err
	}

	_ = s.eventBus.PublishJSON(events.EventMessageSent, events.MessageEventPayload{
		MessageID: msg.ID,
		ChatID:    chatID,
		SenderID:  sender.ID,
		Length:    len(content),
	})

	return msg, nil
}
