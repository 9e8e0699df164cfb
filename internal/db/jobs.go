package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// GetJob retrieves a job by ID. Returns (nil, nil) when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var job types.Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, tenant_id, title, COALESCE(department, ''), COALESCE(job_type, ''), status, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.TenantID, &job.Title, &job.Department, &job.Type, &job.Status, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves all jobs owned by a tenant, newest first.
func (db *DB) ListJobs(ctx context.Context, tenantID uuid.UUID) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, title, COALESCE(department, ''), COALESCE(job_type, ''), status, created_at
		 FROM jobs WHERE tenant_id = $1 ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(&job.ID, &job.TenantID, &job.Title, &job.Department, &job.Type, &job.Status, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// CreateJob inserts a job record, generating its ID when unset.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, tenant_id, title, department, job_type, status, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)`,
		job.ID, job.TenantID, job.Title, job.Department, job.Type, job.Status, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// UpdateJobStatus persists a validated transition. The expected previous
// status is part of the WHERE clause, so a concurrent transition that already
// moved the record off `from` surfaces as store.ErrStaleStatus instead of
// silently overwriting it.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, from, to types.JobStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrStaleStatus
	}
	return nil
}
