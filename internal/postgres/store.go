// Package postgres implements persistence for Sticker Valley on PostgreSQL
// using pgx. The Store is constructed from an explicit connection pool and
// injected into services; nothing in this package holds global state.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides data access backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over an established pool. The caller owns the
// pool's lifecycle (open at process start, close at shutdown).
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InTx runs fn inside a single database transaction. Any error from fn
// rolls the transaction back; otherwise it commits. This is the isolation
// unit for order placement.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	pgtx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer pgtx.Rollback(ctx) // no-op after commit

	if err := fn(&Tx{tx: pgtx}); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tx exposes transactional queries to the order-placement flow.
type Tx struct {
	tx pgx.Tx
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// noRows reports whether err is the no-rows sentinel.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
