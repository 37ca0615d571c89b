package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gathersplit/internal/models"
	"gathersplit/internal/storage"
)

// UserService handles user profile and preference management.
// Accounts are created via AuthService.Register; this service covers the
// rest of the lifecycle.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

type userResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Alias              string `json:"alias,omitempty"`
	Email              string `json:"email"`
	IsVegan            bool   `json:"isVegan"`
	ParticipatesInHerb bool   `json:"participatesInHerb"`
	CreatedAt          int64  `json:"createdAt"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Alias:              user.Alias,
		Email:              user.Email,
		IsVegan:            user.IsVegan,
		ParticipatesInHerb: user.ParticipatesInHerb,
		CreatedAt:          user.CreatedAt,
	}
}

type updateUserRequest struct {
	Name               string `json:"name" validate:"required"`
	Alias              string `json:"alias"`
	IsVegan            bool   `json:"isVegan"`
	ParticipatesInHerb bool   `json:"participatesInHerb"`
}

// ListUsers handles GET /users.
func (s *UserService) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}.
func (s *UserService) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUser handles PUT /users/{id}, updating name, alias and preference
// flags. Preference changes affect future balance computations only; they
// never rewrite stored expenses.
func (s *UserService) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := s.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	user.Name = req.Name
	user.Alias = req.Alias
	user.IsVegan = req.IsVegan
	user.ParticipatesInHerb = req.ParticipatesInHerb

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// DeleteUser handles DELETE /users/{id}.
func (s *UserService) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
