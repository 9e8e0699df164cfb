package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thegranduke/ATS-sub001/internal/types"
)

// AppendStatusChange stores the audit record for an applied status transition.
func (db *DB) AppendStatusChange(ctx context.Context, change *types.StatusChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO status_changes (id, tenant_id, entity_type, entity_id, from_status, to_status, changed_by, reason, changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`,
		change.ID, change.TenantID, change.EntityType, change.EntityID,
		change.From, change.To, change.ChangedBy, change.Reason, change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append status change: %w", err)
	}
	return nil
}

// ListStatusChanges retrieves the transition history for one entity, oldest first.
func (db *DB) ListStatusChanges(ctx context.Context, tenantID, entityID uuid.UUID) ([]types.StatusChange, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, entity_type, entity_id, from_status, to_status, changed_by, COALESCE(reason, ''), changed_at
		 FROM status_changes WHERE tenant_id = $1 AND entity_id = $2 ORDER BY changed_at ASC`,
		tenantID, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", err)
	}
	defer rows.Close()

	var changes []types.StatusChange
	for rows.Next() {
		var change types.StatusChange
		if err := rows.Scan(&change.ID, &change.TenantID, &change.EntityType, &change.EntityID,
			&change.From, &change.To, &change.ChangedBy, &change.Reason, &change.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		changes = append(changes, change)
	}
	return changes, nil
}
