// Package store implements durable CRUD for users, products and orders,
// plus the order placement workflow over a single SQL transaction.
package store

import (
	"database/sql"

	"go.uber.org/zap"
)

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// clampPage normalizes pagination arguments. A negative skip or limit is
// treated as zero; a zero limit yields an empty page.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return skip, limit
}
