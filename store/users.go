package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clothing-store/models"

	"go.uber.org/zap"
)

const userColumns = "id, email, first_name, last_name, created_at"

// CreateUser inserts a new user after checking email uniqueness. The
// password is stored with a fake-hash suffix; real hashing is deliberately
// out of scope for this demo.
func (s *Store) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	existing, err := s.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("User already exists", zap.String("email", req.Email))
		return nil, &DuplicateEmailError{Email: req.Email}
	}

	hashedPassword := req.Password + "notreallyhashed"

	var user models.User
	err = s.db.QueryRowContext(ctx,
		"INSERT INTO users (email, first_name, last_name, hashed_password) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		req.Email, req.FirstName, req.LastName, hashedPassword,
	).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", zap.Int("user_id", user.ID), zap.String("email", user.Email))
	return &user, nil
}

// GetUser returns the user with the given id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("User not found", zap.Int("user_id", id))
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get user", zap.Int("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	s.logger.Info("User found", zap.Int("user_id", user.ID))
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or nil when absent.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email,
	).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	skip, limit = clampPage(skip, limit)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id OFFSET $1 LIMIT $2", skip, limit)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt); err != nil {
			s.logger.Error("Failed to scan user", zap.Error(err))
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.logger.Info("Users listed", zap.Int("count", len(users)))
	return users, nil
}
