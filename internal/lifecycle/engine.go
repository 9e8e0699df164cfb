package lifecycle

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/tenancy"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// Engine validates and applies lifecycle status transitions for jobs and
// candidates. Every apply re-fetches the record tenant-scoped, validates the
// edge against the immutable graphs, persists through the store, appends an
// audit record, and emits a fire-and-forget notification for significant
// transitions.
type Engine struct {
	jobs       store.JobStore
	candidates store.CandidateStore
	audit      store.AuditStore
	notifier   Notifier
	now        func() time.Time
}

// NewEngine creates an Engine. A nil notifier falls back to LogNotifier.
func NewEngine(jobs store.JobStore, candidates store.CandidateStore, audit store.AuditStore, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Engine{
		jobs:       jobs,
		candidates: candidates,
		audit:      audit,
		notifier:   notifier,
		now:        time.Now,
	}
}

// ApplyJobTransition moves a job to the proposed status on behalf of actor.
// The returned StatusChange is the applied audit record.
func (e *Engine) ApplyJobTransition(ctx context.Context, activeTenant uuid.UUID, jobID uuid.UUID, proposed types.JobStatus, actor uuid.UUID, reason string) (*types.StatusChange, error) {
	job, err := e.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	if err := tenancy.Authorize(job, activeTenant, "job"); err != nil {
		return nil, err
	}

	if !ValidateJobTransition(job.Status, proposed) {
		return nil, &ErrInvalidTransition{
			Current:  string(job.Status),
			Proposed: string(proposed),
			Allowed:  jobStatusStrings(AllowedJobTransitions(job.Status)),
		}
	}

	if err := e.jobs.UpdateJobStatus(ctx, jobID, job.Status, proposed); err != nil {
		return nil, fmt.Errorf("failed to persist job status: %w", err)
	}

	change := &types.StatusChange{
		ID:         uuid.New(),
		TenantID:   activeTenant,
		EntityType: types.EntityJob,
		EntityID:   jobID,
		From:       string(job.Status),
		To:         string(proposed),
		ChangedBy:  actor,
		Reason:     reason,
		ChangedAt:  e.now().UTC(),
	}
	e.recordAndNotify(ctx, change, significantJobStatuses[proposed])
	return change, nil
}

// ApplyCandidateTransition moves a candidate to the proposed status.
// Reaching a terminal decision (hired/rejected/withdrawn) stamps ResolvedAt,
// which feeds the time-to-hire aggregations.
func (e *Engine) ApplyCandidateTransition(ctx context.Context, activeTenant uuid.UUID, candidateID uuid.UUID, proposed types.CandidateStatus, actor uuid.UUID, reason string) (*types.StatusChange, error) {
	candidate, err := e.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	if err := tenancy.Authorize(candidate, activeTenant, "candidate"); err != nil {
		return nil, err
	}

	if !ValidateCandidateTransition(candidate.Status, proposed) {
		return nil, &ErrInvalidTransition{
			Current:  string(candidate.Status),
			Proposed: string(proposed),
			Allowed:  candidateStatusStrings(AllowedCandidateTransitions(candidate.Status)),
		}
	}

	var resolvedAt *time.Time
	for _, terminal := range types.TerminalCandidateStatuses {
		if proposed == terminal {
			ts := e.now().UTC()
			resolvedAt = &ts
			break
		}
	}

	if err := e.candidates.UpdateCandidateStatus(ctx, candidateID, candidate.Status, proposed, resolvedAt); err != nil {
		return nil, fmt.Errorf("failed to persist candidate status: %w", err)
	}

	change := &types.StatusChange{
		ID:         uuid.New(),
		TenantID:   activeTenant,
		EntityType: types.EntityCandidate,
		EntityID:   candidateID,
		From:       string(candidate.Status),
		To:         string(proposed),
		ChangedBy:  actor,
		Reason:     reason,
		ChangedAt:  e.now().UTC(),
	}
	e.recordAndNotify(ctx, change, significantCandidateStatuses[proposed])
	return change, nil
}

// recordAndNotify appends the audit record and, for significant transitions,
// emits the notification asynchronously. Neither failure rolls back the
// already-persisted status change.
func (e *Engine) recordAndNotify(ctx context.Context, change *types.StatusChange, significant bool) {
	if err := e.audit.AppendStatusChange(ctx, change); err != nil {
		log.Printf("[lifecycle] failed to append status change audit: %v", err)
	}
	if significant {
		go e.notifier.NotifyStatusChange(context.WithoutCancel(ctx), *change)
	}
}

func jobStatusStrings(statuses []types.JobStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func candidateStatusStrings(statuses []types.CandidateStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
