package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/cadotvn/cadot-user/internal/auth"
	"github.com/cadotvn/cadot-user/internal/services"
	"github.com/cadotvn/cadot-user/internal/store"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserPayload defines the structure for registration requests.
type CreateUserPayload struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	AvatarURL   string `json:"avatarUrl"`
	Password    string `json:"password"`
	IsActive    *bool  `json:"isActive"`
	IsSuperuser bool   `json:"isSuperuser"`
}

func validateCreateUser(p CreateUserPayload) string {
	if !strings.Contains(p.Email, "@") {
		return "A valid email is required"
	}
	if len(p.Username) < 3 || len(p.Username) > 50 {
		return "Username must be between 3 and 50 characters"
	}
	if len(p.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

// Create handles new user registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateCreateUser(payload); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// Accounts are active unless explicitly created disabled.
	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	user, err := h.service.CreateUser(r.Context(), services.CreateUserInput{
		Email:       payload.Email,
		Username:    payload.Username,
		FullName:    payload.FullName,
		PhoneNumber: payload.PhoneNumber,
		AvatarURL:   payload.AvatarURL,
		Password:    payload.Password,
		IsActive:    isActive,
		IsSuperuser: payload.IsSuperuser,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// List handles retrieving a page of active users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	users, err := h.service.ListActiveUsers(r.Context(), skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	if err := auth.RequireActive(user); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateMePayload defines the structure for profile updates. Absent fields
// are left unchanged.
type UpdateMePayload struct {
	Email       *string `json:"email"`
	FullName    *string `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber"`
	AvatarURL   *string `json:"avatarUrl"`
}

// UpdateMe handles updating the current user's profile information.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	if err := auth.RequireActive(user); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var payload UpdateMePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email != nil && !strings.Contains(*payload.Email, "@") {
		http.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), user.ID, services.ProfilePatch{
		Email:       payload.Email,
		FullName:    payload.FullName,
		PhoneNumber: payload.PhoneNumber,
		AvatarURL:   payload.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// ChangePasswordPayload defines the structure for password changes.
type ChangePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangeMyPassword handles changing the current user's password after
// verifying the old one.
func (h *UserHandler) ChangeMyPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	if err := auth.RequireActive(user); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var payload ChangePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(payload.OldPassword) < 8 || len(payload.NewPassword) < 8 {
		http.Error(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	if err := h.service.SetPassword(r.Context(), user, payload.OldPassword, payload.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongOldPassword) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to change password")
		http.Error(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	updated, err := h.service.GetUserByID(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to reload user after password change")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Get handles retrieving a user by their ID. Users may read their own
// record; reading anyone else's requires the superuser role.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	requester, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	if err := auth.RequireActive(requester); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	id := chi.URLParam(r, "id")
	target, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !auth.CanViewUser(requester, target) {
		http.Error(w, auth.ErrInsufficientPrivilege.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(target)
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
