// Package types provides type definitions for the hiring-pipeline domain shared across the system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for users within a tenant
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Tenant represents an isolated customer account (company).
// Its identity is immutable once created; it owns Jobs, Candidates and Users.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a staff member. TenantID is the user's primary affiliation;
// a user only ever acts as one tenant at a time.
type User struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // admin, member
	CreatedAt time.Time `json:"created_at"`
}

// Job represents an open position owned exclusively by its tenant.
type Job struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Title      string    `json:"title"`
	Department string    `json:"department,omitempty"`
	Type       string    `json:"type,omitempty"` // full-time, part-time, contract, internship
	Status     JobStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwningTenant implements tenancy.Owned.
func (j *Job) OwningTenant() uuid.UUID { return j.TenantID }

// Candidate represents an applicant in a tenant's hiring pipeline.
// JobID is optional: candidates may be sourced before a position exists.
// ResolvedAt is set when the candidate reaches a terminal decision (hired/rejected/withdrawn).
type Candidate struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	JobID      *uuid.UUID      `json:"job_id,omitempty"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Source     string          `json:"source,omitempty"` // job-board, referral, direct, etc.
	Status     CandidateStatus `json:"status"`
	AppliedAt  time.Time       `json:"applied_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OwningTenant implements tenancy.Owned.
func (c *Candidate) OwningTenant() uuid.UUID { return c.TenantID }

// ApplicationFunnelRecord is an ephemeral per-submission event captured during
// a single application session. It is patched while the session is open and
// never mutated afterwards; it is read only in aggregate.
type ApplicationFunnelRecord struct {
	SessionID   string     `json:"session_id"`
	JobID       uuid.UUID  `json:"job_id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Completed   bool       `json:"completed"`
	Converted   bool       `json:"converted"`
	Device      string     `json:"device,omitempty"`
	Browser     string     `json:"browser,omitempty"`
	Source      string     `json:"source,omitempty"`
}

// OwningTenant implements tenancy.Owned.
func (r *ApplicationFunnelRecord) OwningTenant() uuid.UUID { return r.TenantID }

// JobViewRecord is an append-only record of a single job-page view.
type JobViewRecord struct {
	JobID    uuid.UUID `json:"job_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	ViewedAt time.Time `json:"viewed_at"`
	Device   string    `json:"device,omitempty"`
	Browser  string    `json:"browser,omitempty"`
	Referrer string    `json:"referrer,omitempty"`
}

// OwningTenant implements tenancy.Owned.
func (v *JobViewRecord) OwningTenant() uuid.UUID { return v.TenantID }

// StatusChange is the audit record appended for every applied status transition.
type StatusChange struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	EntityType string    `json:"entity_type"` // job, candidate
	EntityID   uuid.UUID `json:"entity_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	Reason     string    `json:"reason,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// Entity type constants for StatusChange records
const (
	EntityJob       = "job"
	EntityCandidate = "candidate"
)
