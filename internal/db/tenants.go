package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/thegranduke/ATS-sub001/internal/types"
)

// GetTenant retrieves a tenant by ID. Returns (nil, nil) when absent.
func (db *DB) GetTenant(ctx context.Context, id uuid.UUID) (*types.Tenant, error) {
	var tenant types.Tenant
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM tenants WHERE id = $1`,
		id,
	).Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

// ListTenantsByIDs retrieves the tenants for the given IDs, ordered by name.
// Unknown IDs are silently absent from the result.
func (db *DB) ListTenantsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Tenant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, created_at FROM tenants WHERE id = ANY($1) ORDER BY name ASC`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []types.Tenant
	for rows.Next() {
		var tenant types.Tenant
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}
