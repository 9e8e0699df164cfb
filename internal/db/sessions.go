package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ActiveTenant returns the tenant a user's session is pinned to, or uuid.Nil
// when the user has never switched tenants explicitly.
func (db *DB) ActiveTenant(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var tenantID uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT active_tenant_id FROM user_sessions WHERE user_id = $1`,
		userID,
	).Scan(&tenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to get active tenant: %w", err)
	}
	return tenantID, nil
}

// SetActiveTenant pins a user's session to a tenant.
func (db *DB) SetActiveTenant(ctx context.Context, userID, tenantID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_sessions (user_id, active_tenant_id, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET active_tenant_id = $2, updated_at = NOW()`,
		userID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to set active tenant: %w", err)
	}
	return nil
}
