package service

import (
	"context"
	"testing"

	"alugaki/internal/models"
	"alugaki/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceListForUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	chats, err := env.chats.ListForUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "1", chats[0].ItemID)

	chats, err = env.chats.ListForUser(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestChatServiceGetByID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	chat, err := env.chats.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, chat.Messages, 3)

	_, err = env.chats.GetByID(ctx, "999")
	assert.ErrorIs(t, err, repository.ErrChatNotFound)
}

func TestChatServiceCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	maria, err := env.users.GetByID(ctx, "2")
	require.NoError(t, err)

	t.Run("NewChatCarriesOwnerAndInitiator", func(t *testing.T) {
		chat, err := env.chats.Create(ctx, "3", *maria)
		require.NoError(t, err)
		assert.Equal(t, "3", chat.ItemID)
		assert.Empty(t, chat.Messages)
		require.Len(t, chat.Participants, 2)
		assert.True(t, chat.HasParticipant("2"), "initiator")
		assert.True(t, chat.HasParticipant("1"), "item owner")
	})

	t.Run("CreateIsIdempotent", func(t *testing.T) {
		first, err := env.chats.Create(ctx, "3", *maria)
		require.NoError(t, err)

		second, err := env.chats.Create(ctx, "3", *maria)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		all, err := env.chats.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2) // seed chat + the one created above
	})

	t.Run("UnknownItemCreatesNothing", func(t *testing.T) {
		before, err := env.chats.All(ctx)
		require.NoError(t, err)

		_, err = env.chats.Create(ctx, "999", *maria)
		assert.ErrorIs(t, err, repository.ErrItemNotFound)

		after, err := env.chats.All(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("SeedChatIsReused", func(t *testing.T) {
		// Item 1 already has a conversation between its owner and Maria.
		chat, err := env.chats.Create(ctx, "1", *maria)
		require.NoError(t, err)
		assert.Equal(t, "1", chat.ID)
		assert.Len(t, chat.Messages, 3)
	})
}

func TestChatServiceSendMessage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	joao, err := env.users.GetByID(ctx, "1")
	require.NoError(t, err)

	t.Run("AppendsExactlyOne", func(t *testing.T) {
		before, err := env.chats.GetByID(ctx, "1")
		require.NoError(t, err)

		msg, err := env.chats.SendMessage(ctx, "1", *joao, "Pode sim, combinado!")
		require.NoError(t, err)
		assert.Equal(t, "1", msg.ChatID)
		assert.False(t, msg.Read)
		assert.False(t, msg.CreatedAt.IsZero())

		after, err := env.chats.GetByID(ctx, "1")
		require.NoError(t, err)
		require.Len(t, after.Messages, len(before.Messages)+1)

		last := after.Messages[len(after.Messages)-1]
		assert.Equal(t, msg.ID, last.ID)
		assert.Equal(t, "Pode sim, combinado!", last.Content)
	})

	t.Run("KeepsChronologicalOrder", func(t *testing.T) {
		_, err := env.chats.SendMessage(ctx, "1", *joao, "segunda mensagem")
		require.NoError(t, err)

		chat, err := env.chats.GetByID(ctx, "1")
		require.NoError(t, err)
		for i := 1; i < len(chat.Messages); i++ {
			assert.False(t, chat.Messages[i].CreatedAt.Before(chat.Messages[i-1].CreatedAt))
		}
	})

	t.Run("UnknownChat", func(t *testing.T) {
		_, err := env.chats.SendMessage(ctx, "999", *joao, "oi")
		assert.ErrorIs(t, err, repository.ErrChatNotFound)
	})

	t.Run("NonParticipantSenderIsAccepted", func(t *testing.T) {
		outsider := models.User{ID: "99", Name: "Visitante"}
		msg, err := env.chats.SendMessage(ctx, "1", outsider, "posso entrar?")
		require.NoError(t, err)
		assert.Equal(t, "99", msg.Sender.ID)
	})
}
