package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clothing-store/models"

	"go.uber.org/zap"
)

const productColumns = "id, name, COALESCE(description, ''), price, category, size, color, stock_quantity, created_at"

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Size, &p.Color, &p.StockQuantity, &p.CreatedAt)
}

func (s *Store) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO products (name, description, price, category, size, color, stock_quantity) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "+productColumns,
		req.Name, req.Description, req.Price, req.Category, req.Size, req.Color, req.StockQuantity,
	)
	if err := scanProduct(row, &product); err != nil {
		s.logger.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created", zap.Int("product_id", product.ID), zap.String("name", product.Name))
	return &product, nil
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	err := scanProduct(row, &product)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("Product not found", zap.Int("product_id", id))
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get product", zap.Int("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	s.logger.Info("Product found", zap.Int("product_id", product.ID))
	return &product, nil
}

// ListProducts returns a page of products, optionally filtered by exact
// category match and ordered by the given sort key. Ties always break by
// ascending id so paging stays stable.
func (s *Store) ListProducts(ctx context.Context, skip, limit int, category, sort string) ([]models.Product, error) {
	skip, limit = clampPage(skip, limit)

	query := "SELECT " + productColumns + " FROM products"
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
		s.logger.Info("Filtering products by category", zap.String("category", category))
	}

	switch sort {
	case models.SortPrice:
		query += " ORDER BY price, id"
	case models.SortPriceDesc:
		query += " ORDER BY price DESC, id"
	case models.SortName:
		query += " ORDER BY name, id"
	default:
		query += " ORDER BY id"
	}

	query += fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			s.logger.Error("Failed to scan product", zap.Error(err))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Info("Products listed", zap.Int("count", len(products)))
	return products, nil
}
