package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// GetCandidate retrieves a candidate by ID. Returns (nil, nil) when absent.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var candidate types.Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, tenant_id, job_id, name, COALESCE(email, ''), COALESCE(source, ''),
		        status, applied_at, resolved_at, created_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&candidate.ID, &candidate.TenantID, &candidate.JobID, &candidate.Name,
		&candidate.Email, &candidate.Source, &candidate.Status,
		&candidate.AppliedAt, &candidate.ResolvedAt, &candidate.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &candidate, nil
}

// ListCandidates retrieves all candidates owned by a tenant, newest application first.
func (db *DB) ListCandidates(ctx context.Context, tenantID uuid.UUID) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, tenant_id, job_id, name, COALESCE(email, ''), COALESCE(source, ''),
		        status, applied_at, resolved_at, created_at
		 FROM candidates WHERE tenant_id = $1 ORDER BY applied_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		var candidate types.Candidate
		if err := rows.Scan(&candidate.ID, &candidate.TenantID, &candidate.JobID, &candidate.Name,
			&candidate.Email, &candidate.Source, &candidate.Status,
			&candidate.AppliedAt, &candidate.ResolvedAt, &candidate.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// CreateCandidate inserts a candidate record, generating its ID when unset.
func (db *DB) CreateCandidate(ctx context.Context, candidate *types.Candidate) error {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidates (id, tenant_id, job_id, name, email, source, status, applied_at, resolved_at, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10)`,
		candidate.ID, candidate.TenantID, candidate.JobID, candidate.Name,
		candidate.Email, candidate.Source, candidate.Status,
		candidate.AppliedAt, candidate.ResolvedAt, candidate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// UpdateCandidateStatus persists a validated transition, stamping resolved_at
// when the transition reaches a terminal decision. The expected previous
// status guards against a concurrent transition; a lost race surfaces as
// store.ErrStaleStatus.
func (db *DB) UpdateCandidateStatus(ctx context.Context, id uuid.UUID, from, to types.CandidateStatus, resolvedAt *time.Time) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates SET status = $1, resolved_at = COALESCE($2, resolved_at)
		 WHERE id = $3 AND status = $4`,
		to, resolvedAt, id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrStaleStatus
	}
	return nil
}
