package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"alugaki/internal/models"
	"alugaki/internal/repository"

	"github.com/go-playground/validator/v10"
)

type locationRequest struct {
	Address   string  `json:"address" validate:"required"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createItemRequest struct {
	Title         string          `json:"title" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	PricePerDay   float64         `json:"price_per_day" validate:"gte=0"`
	MaxRentalDays int             `json:"max_rental_days" validate:"gt=0"`
	Images        []string        `json:"images"`
	Location      locationRequest `json:"location" validate:"required"`
	OwnerID       string          `json:"owner_id" validate:"required"`
}

type createChatRequest struct {
	ItemID      string `json:"item_id" validate:"required"`
	InitiatorID string `json:"initiator_id" validate:"required"`
}

type sendMessageRequest struct {
	SenderID string `json:"sender_id" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *HTTPServer) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listItems(w, r)
	case http.MethodPost:
		s.createItem(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listItems(w http.ResponseWriter, r *http.Request) {
	category := models.Category(strings.TrimSpace(r.URL.Query().Get("category")))
	if category != "" && !category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category: %s", category))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.items.List(r.Context(), category, query)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *HTTPServer) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	category := models.Category(req.Category)
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category: %s", req.Category))
		return
	}

	owner, err := s.users.GetByID(r.Context(), req.OwnerID)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	item := models.Item{
		Title:         req.Title,
		Description:   req.Description,
		Category:      category,
		PricePerDay:   req.PricePerDay,
		MaxRentalDays: req.MaxRentalDays,
		Images:        req.Images,
		Location: models.Location{
			Address:   req.Location.Address,
			City:      req.Location.City,
			State:     req.Location.State,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		Available: true,
	}

	created, err := s.items.Create(r.Context(), item, *owner)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleItemByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/items/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	item, err := s.items.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUserItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "items" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	items, err := s.items.ListByOwner(r.Context(), parts[0])
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *HTTPServer) handleChats(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if userID == "" {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		chats, err := s.chats.ListForUser(r.Context(), userID)
		if err != nil {
			writeError(w, statusFromError(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"chats": chats})
	case http.MethodPost:
		s.createChat(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) createChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	initiator, err := s.users.GetByID(r.Context(), req.InitiatorID)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	chat, err := s.chats.Create(r.Context(), req.ItemID, *initiator)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (s *HTTPServer) handleChatByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/chats/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		chat, err := s.chats.GetByID(r.Context(), parts[0])
		if err != nil {
			writeError(w, statusFromError(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, chat)
	case len(parts) == 2 && parts[0] != "" && parts[1] == "messages":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.sendMessage(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) sendMessage(w http.ResponseWriter, r *http.Request, chatID string) {
	var req sendMessageRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	sender, err := s.users.GetByID(r.Context(), req.SenderID)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	msg, err := s.chats.SendMessage(r.Context(), chatID, *sender, req.Content)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.users.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": s.users.Current()})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items, err := s.items.List(r.Context(), "", "")
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	chats, err := s.chats.All(r.Context())
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	path, err := s.reporter.WriteCatalogReport(items, chats)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) decodeAndValidate(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return s.validate.Struct(dst)
}

func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"details": details,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrChatNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
