// Package db provides PostgreSQL access for tenant, hiring and analytics records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thegranduke/ATS-sub001/internal/store"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// DB satisfies every record-store interface the hiring core depends on.
var (
	_ store.TenantStore    = (*DB)(nil)
	_ store.UserStore      = (*DB)(nil)
	_ store.JobStore       = (*DB)(nil)
	_ store.CandidateStore = (*DB)(nil)
	_ store.EventStore     = (*DB)(nil)
	_ store.AuditStore     = (*DB)(nil)
	_ store.SessionStore   = (*DB)(nil)
)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
