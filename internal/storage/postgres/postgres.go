// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

const connectAttempts = 5

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	q querier
}

var _ storage.Repository = (*queries)(nil)

// PostgresStore implements storage.Store on a pgx connection pool.
// Transactions run at SERIALIZABLE isolation; serialization failures surface as
// storage.ErrConflict.
type PostgresStore struct {
	*queries
	pool *pgxpool.Pool
}

// Option tunes the connection pool.
type Option func(*pgxpool.Config)

// WithMaxConns caps the pool size. Values below 1 keep the default of 25.
func WithMaxConns(n int32) Option {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// New connects to databaseURL, retrying with a linear backoff while the server
// comes up, and runs migrations.
func New(ctx context.Context, databaseURL string, opts ...Option) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	for _, opt := range opts {
		opt(poolConfig)
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}

	var pool *pgxpool.Pool
	for i := 0; i < connectAttempts; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				break
			}
			pool.Close()
		}

		if i < connectAttempts-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			slog.Warn("Failed to connect to database, retrying", "attempt", i+1, "wait", wait, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{queries: &queries{q: pool}, pool: pool}, nil
}

// WithTransaction runs fn inside a SERIALIZABLE transaction.
func (s *PostgresStore) WithTransaction(ctx context.Context, fn func(tx storage.Repository) error) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		return fn(&queries{q: tx})
	})
	return mapError(err)
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// mapError turns serialization and deadlock failures into storage.ErrConflict.
func mapError(err error) error {
	if err == nil || errors.Is(err, storage.ErrConflict) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("transaction aborted: %w: %w", storage.ErrConflict, err)
		}
	}
	return err
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s not found: %s: %w", entity, id, storage.ErrNotFound)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// atomic runs fn in the current transaction, or in a new one when s is bound to
// the pool itself.
func (s *queries) atomic(ctx context.Context, fn func(q querier) error) error {
	pool, ok := s.q.(*pgxpool.Pool)
	if !ok {
		return fn(s.q)
	}
	return mapError(pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return fn(tx)
	}))
}
