// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionManager scopes a database session to a single request: one transaction
// begun at the start, committed when the function returns nil, rolled back
// otherwise. Sessions are never shared between requests.
type SessionManager interface {
	WithSession(ctx context.Context, fn func(ctx context.Context) error) error
}

// sqlSessionManager implements SessionManager for SQL databases.
type sqlSessionManager struct {
	db *sql.DB
}

// NewSessionManager creates a new SessionManager for the given database.
func NewSessionManager(db *sql.DB) SessionManager {
	return &sqlSessionManager{db: db}
}

// WithSession executes the function within a database transaction. The
// transaction handle travels in the context so nested repository calls reuse
// the same session; commit happens only after fn succeeds.
func (m *sqlSessionManager) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrDatabase, "begin session: %v", err)
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, apperrors.Wrapf(apperrors.ErrDatabase, "rollback session: %v", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrapf(apperrors.ErrDatabase, "commit session: %v", err)
	}
	return nil
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
