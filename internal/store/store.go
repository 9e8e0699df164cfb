// Package store defines the record-store collaborator interfaces the hiring
// core depends on, plus an in-memory implementation used in tests.
//
// The contract follows the database layer's conventions: Get methods return
// (nil, nil) when the record is absent, and List methods take the resolved
// tenant id so every collection handed to analytics is already scoped.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// ErrStaleStatus is returned by status updates when the record's current
// status no longer matches the status the transition was validated against.
var ErrStaleStatus = errors.New("record status changed since it was read")

// TenantStore provides access to tenant records.
type TenantStore interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*types.Tenant, error)
	ListTenantsByIDs(ctx context.Context, ids []uuid.UUID) ([]types.Tenant, error)
}

// UserStore provides access to user records.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
}

// JobStore provides access to job records.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context, tenantID uuid.UUID) ([]types.Job, error)
	CreateJob(ctx context.Context, job *types.Job) error
	// UpdateJobStatus persists a validated transition. The expected previous
	// status is part of the predicate; ErrStaleStatus signals a lost race.
	UpdateJobStatus(ctx context.Context, id uuid.UUID, from, to types.JobStatus) error
}

// CandidateStore provides access to candidate records.
type CandidateStore interface {
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	ListCandidates(ctx context.Context, tenantID uuid.UUID) ([]types.Candidate, error)
	CreateCandidate(ctx context.Context, candidate *types.Candidate) error
	UpdateCandidateStatus(ctx context.Context, id uuid.UUID, from, to types.CandidateStatus, resolvedAt *time.Time) error
}

// EventStore provides access to the raw analytics event streams.
type EventStore interface {
	ListJobViews(ctx context.Context, tenantID uuid.UUID) ([]types.JobViewRecord, error)
	ListFunnelRecords(ctx context.Context, tenantID uuid.UUID) ([]types.ApplicationFunnelRecord, error)
	AppendJobView(ctx context.Context, view *types.JobViewRecord) error
	SaveFunnelRecord(ctx context.Context, record *types.ApplicationFunnelRecord) error
}

// AuditStore records applied status transitions.
type AuditStore interface {
	AppendStatusChange(ctx context.Context, change *types.StatusChange) error
	ListStatusChanges(ctx context.Context, tenantID uuid.UUID, entityID uuid.UUID) ([]types.StatusChange, error)
}

// SessionStore holds the single per-session active-tenant field.
// ActiveTenant returns uuid.Nil when no explicit switch has happened yet.
type SessionStore interface {
	ActiveTenant(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	SetActiveTenant(ctx context.Context, userID, tenantID uuid.UUID) error
}
