package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/cadotvn/cadot-user/internal/models"
)

// SQLiteStore is the SQLite-backed implementation of UserStore.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const userColumns = `id, email, username, full_name, phone_number, avatar_url,
	hashed_password, is_active, is_superuser, created_at, updated_at`

// GetByID retrieves a single user by their ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a single user by their email. Matching is exact,
// including case.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a single user by their username. Matching is exact,
// including case.
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// List retrieves users ordered by creation time, with offset pagination.
func (s *SQLiteStore) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts a new user record. Returns ErrDuplicate when the email or
// username collides with an existing row.
func (s *SQLiteStore) Create(ctx context.Context, user models.User) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, username, full_name, phone_number, avatar_url,
			hashed_password, is_active, is_superuser, created_at)
		VALUES (:id, :email, :username, :full_name, :phone_number, :avatar_url,
			:hashed_password, :is_active, :is_superuser, :created_at)`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a user record and returns the stored
// result. Returns ErrDuplicate on an email or username collision.
func (s *SQLiteStore) Update(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.UpdatedAt = &now

	res, err := s.db.NamedExecContext(ctx, `
		UPDATE users SET email = :email, username = :username, full_name = :full_name,
			phone_number = :phone_number, avatar_url = :avatar_url,
			is_active = :is_active, is_superuser = :is_superuser, updated_at = :updated_at
		WHERE id = :id`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return models.User{}, ErrNotFound
	}
	return s.GetByID(ctx, user.ID)
}

// UpdatePassword replaces the stored password hash for a user.
func (s *SQLiteStore) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET hashed_password = ?, updated_at = ? WHERE id = ?",
		hashedPassword, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
