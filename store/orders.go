package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clothing-store/models"

	"go.uber.org/zap"
)

// CreateOrder places an order for the given user inside a single
// transaction. Line items are validated in request order against an
// in-memory view of each product, so a product id that appears twice is
// checked against its already-decremented stock, not against a batched sum.
// Any validation or storage failure rolls the whole transaction back;
// stock is only decremented when the order commits.
//
// No row lock is taken while stock is read and updated, so two concurrent
// orders for the same product can both pass the sufficiency check and
// over-sell. Known limitation.
func (s *Store) CreateOrder(ctx context.Context, userID int, items []models.OrderItemRequest) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("Failed to begin order transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}

	seen := make(map[int]*models.Product)
	quantities := make(map[int]int)
	var touched []int // distinct product ids in first-seen order
	var total float64

	for _, item := range items {
		product, ok := seen[item.ProductID]
		if !ok {
			product = &models.Product{}
			err := tx.QueryRowContext(ctx,
				"SELECT id, name, price, stock_quantity FROM products WHERE id = $1", item.ProductID,
			).Scan(&product.ID, &product.Name, &product.Price, &product.StockQuantity)
			if errors.Is(err, sql.ErrNoRows) {
				tx.Rollback()
				s.logger.Warn("Order references missing product", zap.Int("product_id", item.ProductID))
				return nil, &ProductNotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				tx.Rollback()
				s.logger.Error("Failed to load product for order", zap.Int("product_id", item.ProductID), zap.Error(err))
				return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
			}
			seen[item.ProductID] = product
			touched = append(touched, item.ProductID)
		}

		if product.StockQuantity < item.Quantity {
			tx.Rollback()
			s.logger.Warn("Insufficient stock for order",
				zap.Int("product_id", product.ID),
				zap.Int("requested", item.Quantity),
				zap.Int("available", product.StockQuantity),
			)
			return nil, &InsufficientStockError{ProductID: product.ID, Name: product.Name}
		}

		total += product.Price * float64(item.Quantity)
		product.StockQuantity -= item.Quantity
		quantities[item.ProductID] += item.Quantity
	}

	order := &models.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
	}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, total_amount, status) VALUES ($1, $2, $3) RETURNING id, created_at",
		userID, total, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		tx.Rollback()
		s.logger.Error("Failed to insert order", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, id := range touched {
		product := seen[id]
		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock_quantity = $1 WHERE id = $2",
			product.StockQuantity, product.ID,
		); err != nil {
			tx.Rollback()
			s.logger.Error("Failed to update product stock", zap.Int("product_id", product.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to update stock for product %d: %w", product.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_product (order_id, product_id, quantity) VALUES ($1, $2, $3)",
			order.ID, product.ID, quantities[id],
		); err != nil {
			tx.Rollback()
			s.logger.Error("Failed to insert order line", zap.Int("order_id", order.ID), zap.Int("product_id", product.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}

		order.Products = append(order.Products, models.OrderLine{ProductID: product.ID, Quantity: quantities[id]})
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("Failed to commit order", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info("Order created",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", userID),
		zap.Float64("total_amount", total),
		zap.Int("line_count", len(order.Products)),
	)
	return order, nil
}

// GetOrder returns the order with the given id and its line items, or nil
// when absent.
func (s *Store) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	var updatedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at, updated_at FROM orders WHERE id = $1", id,
	).Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status, &order.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("Order not found", zap.Int("order_id", id))
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get order", zap.Int("order_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	if updatedAt.Valid {
		order.UpdatedAt = &updatedAt.Time
	}

	if err := s.loadOrderLines(ctx, &order); err != nil {
		return nil, err
	}

	s.logger.Info("Order found", zap.Int("order_id", order.ID))
	return &order, nil
}

// ListOrders returns a page of the given user's orders, each with its line
// items loaded by an explicit follow-up query.
func (s *Store) ListOrders(ctx context.Context, userID, skip, limit int) ([]models.Order, error) {
	skip, limit = clampPage(skip, limit)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at, updated_at FROM orders WHERE user_id = $1 ORDER BY id OFFSET $2 LIMIT $3",
		userID, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		var updatedAt sql.NullTime
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status, &order.CreatedAt, &updatedAt); err != nil {
			s.logger.Error("Failed to scan order", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if updatedAt.Valid {
			order.UpdatedAt = &updatedAt.Time
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		if err := s.loadOrderLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Orders listed", zap.Int("user_id", userID), zap.Int("count", len(orders)))
	return orders, nil
}

func (s *Store) loadOrderLines(ctx context.Context, order *models.Order) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT product_id, quantity FROM order_product WHERE order_id = $1", order.ID)
	if err != nil {
		s.logger.Error("Failed to load order lines", zap.Int("order_id", order.ID), zap.Error(err))
		return fmt.Errorf("failed to load lines for order %d: %w", order.ID, err)
	}
	defer rows.Close()

	order.Products = []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Products = append(order.Products, line)
	}
	return rows.Err()
}
