package storage

import (
	"context"

	"github.com/iudanet/apistarter/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user and fills in the generated ID.
	// Returns ErrUserAlreadyExists if username or email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListUsers retrieves all users ordered by ID
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CountUsers returns the total number of users
	CountUsers(ctx context.Context) (int64, error)
}
