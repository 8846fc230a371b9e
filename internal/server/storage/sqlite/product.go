package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/storage"
)

// CreateProduct creates a new product and fills in the generated ID
func (s *Storage) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, category, price)
		VALUES (?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		product.Name,
		product.Category,
		product.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted product id: %w", err)
	}
	product.ID = id

	return nil
}

// GetProductByID retrieves product by ID
func (s *Storage) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, name, category, price
		FROM products
		WHERE id = ?
	`

	product := &models.Product{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts retrieves a page of products ordered by ID
func (s *Storage) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, name, category, price
		FROM products
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// CountProducts returns the total number of products
func (s *Storage) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
