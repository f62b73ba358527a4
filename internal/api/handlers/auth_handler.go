package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cadotvn/cadot-user/internal/auth"
	"github.com/cadotvn/cadot-user/internal/models"
	"github.com/cadotvn/cadot-user/internal/services"
)

// AuthHandler handles HTTP requests for login and token issuance.
type AuthHandler struct {
	service       services.UserServiceProvider
	tokens        *auth.TokenService
	tokenLifetime time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenService, tokenLifetime time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		service:       service,
		tokens:        tokens,
		tokenLifetime: tokenLifetime,
		secureCookies: secureCookies,
	}
}

// LoginPayload defines the structure for JSON login requests. The identifier
// field accepts either an email or a username.
type LoginPayload struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	User        models.User `json:"user"`
}

// Login handles JSON-body authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.login(w, r, payload.EmailOrUsername, payload.Password)
}

// AccessToken handles form-encoded authentication in the OAuth2 password
// shape: the username field carries either an email or a username.
func (h *AuthHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.login(w, r, r.PostFormValue("username"), r.PostFormValue("password"))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, identifier, password string) {
	user, err := h.service.Authenticate(r.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn().Str("identifier", identifier).Msg("Failed authentication attempt")
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("identifier", identifier).Msg("Authentication error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := auth.RequireActive(user); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate access token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokenLifetime),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
