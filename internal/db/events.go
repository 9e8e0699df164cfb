package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thegranduke/ATS-sub001/internal/types"
)

// ListJobViews retrieves every job-page view recorded for a tenant, oldest first.
func (db *DB) ListJobViews(ctx context.Context, tenantID uuid.UUID) ([]types.JobViewRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id, tenant_id, viewed_at, COALESCE(device, ''), COALESCE(browser, ''), COALESCE(referrer, '')
		 FROM job_views WHERE tenant_id = $1 ORDER BY viewed_at ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job views: %w", err)
	}
	defer rows.Close()

	var views []types.JobViewRecord
	for rows.Next() {
		var view types.JobViewRecord
		if err := rows.Scan(&view.JobID, &view.TenantID, &view.ViewedAt, &view.Device, &view.Browser, &view.Referrer); err != nil {
			return nil, fmt.Errorf("failed to scan job view: %w", err)
		}
		views = append(views, view)
	}
	return views, nil
}

// ListFunnelRecords retrieves every application-session record for a tenant, oldest first.
func (db *DB) ListFunnelRecords(ctx context.Context, tenantID uuid.UUID) ([]types.ApplicationFunnelRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT session_id, job_id, tenant_id, started_at, completed_at, completed, converted,
		        COALESCE(device, ''), COALESCE(browser, ''), COALESCE(source, '')
		 FROM application_funnel WHERE tenant_id = $1 ORDER BY started_at ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list funnel records: %w", err)
	}
	defer rows.Close()

	var records []types.ApplicationFunnelRecord
	for rows.Next() {
		var record types.ApplicationFunnelRecord
		if err := rows.Scan(&record.SessionID, &record.JobID, &record.TenantID,
			&record.StartedAt, &record.CompletedAt, &record.Completed, &record.Converted,
			&record.Device, &record.Browser, &record.Source); err != nil {
			return nil, fmt.Errorf("failed to scan funnel record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// AppendJobView stores a single job-page view. Views are append-only.
func (db *DB) AppendJobView(ctx context.Context, view *types.JobViewRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_views (job_id, tenant_id, viewed_at, device, browser, referrer)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))`,
		view.JobID, view.TenantID, view.ViewedAt, view.Device, view.Browser, view.Referrer,
	)
	if err != nil {
		return fmt.Errorf("failed to append job view: %w", err)
	}
	return nil
}

// SaveFunnelRecord upserts an application-session record keyed by session ID.
// The same session is patched while the application is open and never touched
// afterwards.
func (db *DB) SaveFunnelRecord(ctx context.Context, record *types.ApplicationFunnelRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO application_funnel (session_id, job_id, tenant_id, started_at, completed_at, completed, converted, device, browser, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''))
		 ON CONFLICT (session_id) DO UPDATE SET
		   completed_at = $5, completed = $6, converted = $7`,
		record.SessionID, record.JobID, record.TenantID, record.StartedAt,
		record.CompletedAt, record.Completed, record.Converted,
		record.Device, record.Browser, record.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to save funnel record: %w", err)
	}
	return nil
}
