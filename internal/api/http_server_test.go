package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"alugaki/internal/config"
	"alugaki/internal/events"
	"alugaki/internal/export"
	"alugaki/internal/models"
	"alugaki/internal/repository"
	"alugaki/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()

	logger := zerolog.Nop()
	repo := repository.NewMarketplace(repository.SeedUsers(), repository.SeedItems(), repository.SeedChats())
	sessions := repository.NewMemorySessionStore()
	bus := events.NewEventBus()

	items := service.NewItemService(repo, bus, 0, &logger)
	chats := service.NewChatService(repo, items, bus, 0, &logger)
	users := service.NewUserService(repo, sessions, bus, 0, &logger)
	reporter := export.NewReporter(t.TempDir())

	cfg := config.APIConfig{Enabled: true, Port: 0}
	return NewHTTPServer(cfg, items, chats, users, reporter, &logger)
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListItems(t *testing.T) {
	srv := newTestServer(t)

	t.Run("All", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items []models.Item `json:"items"`
		}
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Items, 4)
	})

	t.Run("CategoryFilter", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items?category=music", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items []models.Item `json:"items"`
		}
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Items, 1)
		assert.Contains(t, resp.Items[0].Title, "Guitarra")
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items?category=furniture", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("TextQuery", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items?q=GUITARRA", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items []models.Item `json:"items"`
		}
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Items, 1)
	})
}

func TestGetItemByID(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.Item
	decodeBody(t, rec, &item)
	assert.Equal(t, "1", item.ID)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/items/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateItem(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{
		"title":           "Furadeira de impacto",
		"description":     "800W com maleta",
		"category":        "tools",
		"price_per_day":   25.0,
		"max_rental_days": 10,
		"owner_id":        "1",
		"location": map[string]any{
			"address": "Rua das Flores, 100",
			"city":    "São Paulo",
			"state":   "SP",
		},
	}

	t.Run("Created", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/items", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var item models.Item
		decodeBody(t, rec, &item)
		assert.Equal(t, "5", item.ID)
		assert.Equal(t, "1", item.Owner.ID)
		assert.True(t, item.Available)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		bad := map[string]any{"title": "sem categoria"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/items", bad)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "validation failed", resp.Error)
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("UnknownOwner", func(t *testing.T) {
		clone := map[string]any{}
		for k, v := range body {
			clone[k] = v
		}
		clone["owner_id"] = "404"
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/items", clone)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserItems(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/users/1/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []models.Item `json:"items"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Items)
	for _, item := range resp.Items {
		assert.Equal(t, "1", item.Owner.ID)
	}
}

func TestChatEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("ListRequiresUserID", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/chats", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ListForUser", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/chats?user_id=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Chats []models.Chat `json:"chats"`
		}
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Chats, 1)
	})

	t.Run("CreateIsIdempotent", func(t *testing.T) {
		body := map[string]any{"item_id": "3", "initiator_id": "2"}

		first := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/chats", body)
		require.Equal(t, http.StatusOK, first.Code, first.Body.String())
		var chatA models.Chat
		decodeBody(t, first, &chatA)

		second := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/chats", body)
		require.Equal(t, http.StatusOK, second.Code)
		var chatB models.Chat
		decodeBody(t, second, &chatB)

		assert.Equal(t, chatA.ID, chatB.ID)
	})

	t.Run("GetByID", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/chats/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var chat models.Chat
		decodeBody(t, rec, &chat)
		assert.Len(t, chat.Messages, 3)
	})

	t.Run("SendMessage", func(t *testing.T) {
		body := map[string]any{"sender_id": "1", "content": "Pode sim!"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/chats/1/messages", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var msg models.Message
		decodeBody(t, rec, &msg)
		assert.Equal(t, "1", msg.ChatID)
		assert.Equal(t, "Pode sim!", msg.Content)
		assert.False(t, msg.Read)
	})

	t.Run("SendMessageUnknownChat", func(t *testing.T) {
		body := map[string]any{"sender_id": "1", "content": "oi"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/chats/999/messages", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("SessionStartsEmpty", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/session", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			User *models.User `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.Nil(t, resp.User)
	})

	t.Run("Login", func(t *testing.T) {
		body := map[string]any{"email": "joao@email.com", "password": "qualquer"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/auth/login", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var user models.User
		decodeBody(t, rec, &user)
		assert.Equal(t, "João Silva", user.Name)

		sess := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/session", nil)
		var resp struct {
			User *models.User `json:"user"`
		}
		decodeBody(t, sess, &resp)
		require.NotNil(t, resp.User)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("LoginUnknownEmail", func(t *testing.T) {
		body := map[string]any{"email": "nope@x.com", "password": "qualquer"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("RegisterDuplicateEmail", func(t *testing.T) {
		body := map[string]any{"name": "Outro João", "email": "joao@email.com", "password": "secret1"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Register", func(t *testing.T) {
		body := map[string]any{"name": "Ana Lima", "email": "ana@email.com", "password": "secret1"}
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/auth/register", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var user models.User
		decodeBody(t, rec, &user)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.Avatar)
	})

	t.Run("Logout", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/auth/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		sess := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/session", nil)
		var resp struct {
			User *models.User `json:"user"`
		}
		decodeBody(t, sess, &resp)
		assert.Nil(t, resp.User)
	})
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		File string `json:"file"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.File, "catalog_")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items/1"},
		{http.MethodGet, "/api/v1/auth/login"},
		{http.MethodGet, "/api/v1/export"},
	} {
		rec := doJSON(t, srv.Handler(), tc.method, tc.target, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, fmt.Sprintf("%s %s", tc.method, tc.target))
	}
}

func TestRateLimiterDisabledByDefault(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 50; i++ {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
