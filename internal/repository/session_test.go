package repository

import (
	"context"
	"testing"

	"alugaki/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	t.Run("LoadEmpty", func(t *testing.T) {
		user, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &models.User{ID: "1", Name: "João Silva", Email: "joao@email.com"}))

		user, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "João Silva", user.Name)
	})

	t.Run("SaveOverwritesWholesale", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &models.User{ID: "2", Name: "Maria Souza"}))

		user, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "2", user.ID)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		user, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}
