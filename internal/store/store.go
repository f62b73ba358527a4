package store

import (
	"context"
	"errors"

	"github.com/cadotvn/cadot-user/internal/models"
)

var (
	// ErrNotFound indicates no user matched the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate indicates an email or username uniqueness violation.
	ErrDuplicate = errors.New("email or username already in use")
)

// UserStore defines the persistence operations for user records. Lookups
// return ErrNotFound rather than a database-level error when no row matches.
type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Create(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
}
