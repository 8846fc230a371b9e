package storage

import (
	"context"

	"github.com/iudanet/apistarter/internal/models"
)

// ProductStorage defines interface for product data persistence
type ProductStorage interface {
	// CreateProduct creates a new product and fills in the generated ID
	CreateProduct(ctx context.Context, product *models.Product) error

	// GetProductByID retrieves product by ID
	// Returns ErrProductNotFound if product doesn't exist
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)

	// ListProducts retrieves a page of products ordered by ID
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)

	// CountProducts returns the total number of products
	CountProducts(ctx context.Context) (int64, error)
}
