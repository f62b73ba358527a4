package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadotvn/cadot-user/internal/database"
	"github.com/cadotvn/cadot-user/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	return NewSQLiteStore(db)
}

func testUser(id, email, username string) models.User {
	return models.User{
		ID:             id,
		Email:          email,
		Username:       username,
		HashedPassword: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefakefa",
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestSQLiteStore_CreateAndLookups(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))

	byID, err := s.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
	assert.True(t, byID.IsActive)
	assert.Nil(t, byID.UpdatedAt)

	byEmail, err := s.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byUsername, err := s.GetByUsername(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "u1", byUsername.ID)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ExactMatchLookups(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "Alice")))

	// Lookups are exact-match, including case.
	_, err := s.GetByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))
	err := s.Create(ctx, testUser("u2", "a@x.com", "b"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteStore_DuplicateUsername(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))
	err := s.Create(ctx, testUser("u2", "b@x.com", "a"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteStore_Update(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))

	user, err := s.GetByID(ctx, "u1")
	require.NoError(t, err)
	user.FullName = "Alice Example"
	user.PhoneNumber = "+1555"

	updated, err := s.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", updated.FullName)
	assert.Equal(t, "+1555", updated.PhoneNumber)
	require.NotNil(t, updated.UpdatedAt)

	_, err = s.Update(ctx, testUser("missing", "m@x.com", "m"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_UpdateDuplicate(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))
	require.NoError(t, s.Create(ctx, testUser("u2", "b@x.com", "b")))

	user, err := s.GetByID(ctx, "u2")
	require.NoError(t, err)
	user.Email = "a@x.com"

	_, err = s.Update(ctx, user)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteStore_UpdatePassword(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testUser("u1", "a@x.com", "a")))
	require.NoError(t, s.UpdatePassword(ctx, "u1", "$2a$04$newhash"))

	user, err := s.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$newhash", user.HashedPassword)
	assert.NotNil(t, user.UpdatedAt)

	assert.ErrorIs(t, s.UpdatePassword(ctx, "missing", "x"), ErrNotFound)
}

func TestSQLiteStore_List(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, name := range []string{"a", "b", "c"} {
		u := testUser("u"+name, name+"@x.com", name)
		u.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Create(ctx, u))
	}

	all, err := s.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ua", all[0].ID)

	page, err := s.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ub", page[0].ID)
}
