package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testUser(username, email, role string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$fakehashfakehashfakehash",
		Role:         role,
	}
}

func TestStorage_CreateUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user := testUser("alice", "alice@real.com", models.RoleUser)
	require.NoError(t, s.CreateUser(ctx, user))

	// ID проставляется после вставки
	assert.NotZero(t, user.ID)

	second := testUser("bob", "bob@real.com", models.RoleUser)
	require.NoError(t, s.CreateUser(ctx, second))
	assert.Greater(t, second.ID, user.ID)
}

func TestStorage_CreateUser_Duplicates(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("alice", "alice@real.com", models.RoleUser)))

	// Дубликат username
	err := s.CreateUser(ctx, testUser("alice", "other@real.com", models.RoleUser))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Дубликат email
	err = s.CreateUser(ctx, testUser("alice2", "alice@real.com", models.RoleUser))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestStorage_GetUser(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	created := testUser("alice", "alice@real.com", models.RoleAdmin)
	require.NoError(t, s.CreateUser(ctx, created))

	byUsername, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)
	assert.Equal(t, "alice@real.com", byUsername.Email)
	assert.Equal(t, models.RoleAdmin, byUsername.Role)
	assert.Equal(t, created.PasswordHash, byUsername.PasswordHash)

	byEmail, err := s.GetUserByEmail(ctx, "alice@real.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	_, err := s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByEmail(ctx, "nobody@real.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, 12345)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_ListUsers(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, s.CreateUser(ctx, testUser("bob", "bob@real.com", models.RoleUser)))
	require.NoError(t, s.CreateUser(ctx, testUser("alice", "alice@real.com", models.RoleAdmin)))

	users, err = s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Сортировка по id, не по имени
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
