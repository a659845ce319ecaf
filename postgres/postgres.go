// Package postgres implements workflow.Store on PostgreSQL via pgx.
//
// Snapshots are JSON documents, so values are kept in a JSONB column and can
// be inspected with ordinary SQL.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/workflow"
)

// PGStore implements workflow.Store using PostgreSQL via pgx.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Close closes the underlying pool.
func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}

var _ workflow.Store = (*PGStore)(nil)
