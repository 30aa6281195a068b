package repository

import (
	"context"
	"strconv"
	"sync"

	"alugaki/internal/models"
)

// Marketplace is the in-memory repository owning the catalog, the roster and
// the chat list. Ids come from monotonic counters independent of collection
// length, so they stay unique even if entries were ever removed.
type Marketplace struct {
	mu sync.RWMutex

	items    []models.Item
	itemsMap map[string]int

	users    []models.User
	usersMap map[string]int

	chats    []*models.Chat
	chatsMap map[string]int

	nextItemID int64
	nextUserID int64
	nextChatID int64
	msgSeq     map[string]int64
}

// NewMarketplace builds a repository seeded with the given collections.
// Counters start past the highest numeric id found in the seed.
func NewMarketplace(users []models.User, items []models.Item, chats []*models.Chat) *Marketplace {
	m := &Marketplace{
		itemsMap: make(map[string]int),
		usersMap: make(map[string]int),
		chatsMap: make(map[string]int),
		msgSeq:   make(map[string]int64),

		nextItemID: 1,
		nextUserID: 1,
		nextChatID: 1,
	}

	for _, u := range users {
		m.usersMap[u.ID] = len(m.users)
		m.users = append(m.users, u)
		m.nextUserID = bumpSeq(m.nextUserID, u.ID)
	}

	for _, it := range items {
		m.itemsMap[it.ID] = len(m.items)
		m.items = append(m.items, it)
		m.nextItemID = bumpSeq(m.nextItemID, it.ID)
	}

	for _, c := range chats {
		owned := copyChat(c)
		m.chatsMap[owned.ID] = len(m.chats)
		m.chats = append(m.chats, owned)
		m.nextChatID = bumpSeq(m.nextChatID, owned.ID)

		seq := int64(1)
		for _, msg := range owned.Messages {
			seq = bumpSeq(seq, msg.ID)
		}
		m.msgSeq[owned.ID] = seq
	}

	return m
}

func bumpSeq(current int64, id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return current
	}
	if n >= current {
		return n + 1
	}
	return current
}

func copyChat(c *models.Chat) *models.Chat {
	cp := *c
	cp.Participants = append([]models.User(nil), c.Participants...)
	cp.Messages = append([]models.Message(nil), c.Messages...)
	return &cp
}

func (m *Marketplace) ListItems(ctx context.Context) ([]models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Item(nil), m.items...), nil
}

func (m *Marketplace) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.itemsMap[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	item := m.items[idx]
	return &item, nil
}

func (m *Marketplace) GetItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Item
	for _, it := range m.items {
		if it.Owner.ID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

// CreateItem assigns the next catalog id and appends the item. The owner
// snapshot and creation timestamp are the caller's responsibility.
func (m *Marketplace) CreateItem(ctx context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = strconv.FormatInt(m.nextItemID, 10)
	m.nextItemID++
	m.itemsMap[item.ID] = len(m.items)
	m.items = append(m.items, *item)
	return nil
}

func (m *Marketplace) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.User(nil), m.users...), nil
}

func (m *Marketplace) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.usersMap[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := m.users[idx]
	return &user, nil
}

func (m *Marketplace) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// CreateUser appends a new roster record, enforcing email uniqueness.
func (m *Marketplace) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
	}
	user.ID = strconv.FormatInt(m.nextUserID, 10)
	m.nextUserID++
	m.usersMap[user.ID] = len(m.users)
	m.users = append(m.users, *user)
	return nil
}

func (m *Marketplace) ListChats(ctx context.Context) ([]*models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Chat, 0, len(m.chats))
	for _, c := range m.chats {
		out = append(out, copyChat(c))
	}
	return out, nil
}

func (m *Marketplace) ListChatsByParticipant(ctx context.Context, userID string) ([]*models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Chat
	for _, c := range m.chats {
		if c.HasParticipant(userID) {
			out = append(out, copyChat(c))
		}
	}
	return out, nil
}

func (m *Marketplace) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.chatsMap[id]
	if !ok {
		return nil, ErrChatNotFound
	}
	return copyChat(m.chats[idx]), nil
}

// FindChat looks up the conversation for an (item, initiator, owner) triple.
// Returns (nil, nil) when no such chat exists.
func (m *Marketplace) FindChat(ctx context.Context, itemID, initiatorID, ownerID string) (*models.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.chats {
		if c.ItemID == itemID && c.HasParticipant(initiatorID) && c.HasParticipant(ownerID) {
			return copyChat(c), nil
		}
	}
	return nil, nil
}

// CreateChat assigns the next chat id and appends the conversation.
func (m *Marketplace) CreateChat(ctx context.Context, chat *models.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat.ID = strconv.FormatInt(m.nextChatID, 10)
	m.nextChatID++
	m.chatsMap[chat.ID] = len(m.chats)
	m.msgSeq[chat.ID] = 1
	m.chats = append(m.chats, copyChat(chat))
	return nil
}

// AppendMessage assigns the message id from the chat's own sequence and
// appends it to the chat's message list, keeping append order.
func (m *Marketplace) AppendMessage(ctx context.Context, chatID string, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.chatsMap[chatID]
	if !ok {
		return ErrChatNotFound
	}

	seq := m.msgSeq[chatID]
	if seq == 0 {
		seq = int64(len(m.chats[idx].Messages)) + 1
	}
	msg.ID = strconv.FormatInt(seq, 10)
	m.msgSeq[chatID] = seq + 1

	msg.ChatID = chatID
	m.chats[idx].Messages = append(m.chats[idx].Messages, *msg)
	return nil
}
