package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cadotvn/cadot-user/internal/auth"
	"github.com/cadotvn/cadot-user/internal/models"
	"github.com/cadotvn/cadot-user/internal/store"
)

// ErrWrongOldPassword indicates a password change was attempted with an
// incorrect current password. The stored hash is left untouched.
var ErrWrongOldPassword = errors.New("old password is incorrect")

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Email       string
	Username    string
	FullName    string
	PhoneNumber string
	AvatarURL   string
	Password    string
	IsActive    bool
	IsSuperuser bool
}

// ProfilePatch carries optional profile updates; nil fields are left as-is.
type ProfilePatch struct {
	Email       *string
	FullName    *string
	PhoneNumber *string
	AvatarURL   *string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, input CreateUserInput) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	ListActiveUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (models.User, error)
	SetPassword(ctx context.Context, user models.User, oldPassword, newPassword string) error
	Authenticate(ctx context.Context, identifier, password string) (models.User, error)
}

// UserService provides business logic for user management and credential
// verification.
type UserService struct {
	users  store.UserStore
	hasher *auth.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, hasher *auth.Hasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// CreateUser creates a new user, hashing their password. Email and username
// collisions surface as store.ErrDuplicate.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (models.User, error) {
	// Pre-check both identity keys so the caller gets a message naming the
	// colliding field; the unique constraint still backstops races.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return models.User{}, fmt.Errorf("%w: email", store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return models.User{}, fmt.Errorf("%w: username", store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		Username:       input.Username,
		FullName:       input.FullName,
		PhoneNumber:    input.PhoneNumber,
		AvatarURL:      input.AvatarURL,
		HashedPassword: hashedPassword,
		IsActive:       input.IsActive,
		IsSuperuser:    input.IsSuperuser,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User created")
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListActiveUsers retrieves a page of users, filtered to active accounts.
func (s *UserService) ListActiveUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	active := make([]models.User, 0, len(users))
	for _, u := range users {
		if auth.IsActive(u) {
			active = append(active, u)
		}
	}
	return active, nil
}

// UpdateProfile applies a partial profile update to a user.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}

	return s.users.Update(ctx, user)
}

// SetPassword verifies the current password, then hashes and stores a new
// one. A failed verification leaves the stored hash unchanged.
func (s *UserService) SetPassword(ctx context.Context, user models.User, oldPassword, newPassword string) error {
	ok, err := s.hasher.Verify(oldPassword, user.HashedPassword)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn().Str("user_id", user.ID).Msg("Password change rejected: old password mismatch")
		return ErrWrongOldPassword
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hashedPassword)
}

// Authenticate resolves a login identifier plus password to a verified user.
// The identifier is tried as an email first, then as a username. Unknown
// identifier and wrong password return the same generic rejection. Account
// status is deliberately not checked here; callers gate on it separately.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("identifier", identifier).Msg("Authentication failed: unknown identifier")
			return models.User{}, auth.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := s.hasher.Verify(password, user.HashedPassword)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		log.Warn().Str("identifier", identifier).Str("user_id", user.ID).Msg("Authentication failed: password mismatch")
		return models.User{}, auth.ErrInvalidCredentials
	}

	return user, nil
}

// EnsureInitialSuperuser creates the configured bootstrap superuser when no
// account with that email exists yet.
func (s *UserService) EnsureInitialSuperuser(ctx context.Context, email, username, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err := s.CreateUser(ctx, CreateUserInput{
		Email:       email,
		Username:    username,
		FullName:    "Initial Admin",
		Password:    password,
		IsActive:    true,
		IsSuperuser: true,
	})
	if err != nil {
		return fmt.Errorf("seed initial superuser: %w", err)
	}
	log.Info().Str("email", email).Msg("Initial superuser created")
	return nil
}
