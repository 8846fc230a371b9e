package handlers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/policy"
	"github.com/iudanet/apistarter/internal/server/storage"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users     map[string]*models.User // username -> User
	nextID    int64
	listError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var users []*models.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserStorage) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// mockProductStorage is a mock implementation of ProductStorage for testing
type mockProductStorage struct {
	products []*models.Product
}

func (m *mockProductStorage) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = int64(len(m.products) + 1)
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductStorage) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, storage.ErrProductNotFound
}

func (m *mockProductStorage) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	if offset >= len(m.products) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.products) {
		end = len(m.products)
	}
	return m.products[offset:end], nil
}

func (m *mockProductStorage) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// setupAuthService собирает auth.Service на mock хранилище с
// blocklist {"tempmail.com"}
func setupAuthService(t *testing.T, store storage.UserStorage) *auth.Service {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-key", "HS256", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	blocklist := policy.NewBlocklist([]string{"tempmail.com"})
	return auth.NewService(store, tokens, blocklist)
}
