package service

import (
	"context"
	"strings"
	"time"

	"alugaki/internal/domain"
	"alugaki/internal/events"
	"alugaki/internal/metrics"
	"alugaki/internal/models"

	"github.com/rs/zerolog"
)

// ItemService is the item directory: catalog listing with category/text
// filtering, lookups and creation.
type ItemService struct {
	repo     domain.MarketplaceRepository
	eventBus domain.EventPublisher
	latency  time.Duration
	logger   *zerolog.Logger
}

func NewItemService(repo domain.MarketplaceRepository, eventBus domain.EventPublisher, latency time.Duration, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		eventBus: eventBus,
		latency:  latency,
		logger:   logger,
	}
}

// List returns catalog items in insertion order. A non-empty category keeps
// only items of that category; a non-empty query keeps only items whose
// title, description or location city contains it case-insensitively. Both
// filters compose.
func (s *ItemService) List(ctx context.Context, category models.Category, query string) ([]models.Item, error) {
	simulateLatency(s.latency)
	metrics.IncOp("items", "list")

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if query != "" {
		term := strings.ToLower(query)
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), term) ||
				strings.Contains(strings.ToLower(item.Description), term) ||
				strings.Contains(strings.ToLower(item.Location.City), term) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return items, nil
}

func (s *ItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	simulateLatency(s.latency)
	metrics.IncOp("items", "get")
	return s.repo.GetItemByID(ctx, id)
}

// ListByOwner returns all items whose owner snapshot carries the given id.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	simulateLatency(s.latency)
	metrics.IncOp("items", "list_by_owner")
	return s.repo.GetItemsByOwner(ctx, ownerID)
}

// Create appends a new item to the catalog, embedding the owner as given
// and stamping the creation time. No field validation happens here; the
// presentation boundary validates before calling.
func (s *ItemService) Create(ctx context.Context, item models.Item, owner models.User) (*models.Item, error) {
	simulateLatency(s.latency)
	metrics.IncOp("items", "create")

	item.ID = ""
	item.Owner = owner
	item.CreatedAt = time.Now()

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("category", string(item.Category)).
		Str("owner_id", owner.ID).
		Msg("item listed")

	_ = s.eventBus.PublishJSON(events.EventItemCreated, events.ItemEventPayload{
		ItemID:      item.ID,
		Title:       item.Title,
		Category:    item.Category,
		PricePerDay: item.PricePerDay,
		OwnerID:     owner.ID,
	})

	return &item, nil
}
