package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// Memory is an in-memory record store implementing every store interface.
// It backs the test suites and local development without a database.
type Memory struct {
	mu sync.RWMutex

	tenants    map[uuid.UUID]types.Tenant
	users      map[uuid.UUID]types.User
	jobs       map[uuid.UUID]types.Job
	candidates map[uuid.UUID]types.Candidate
	views      []types.JobViewRecord
	funnel     map[string]types.ApplicationFunnelRecord
	changes    []types.StatusChange
	sessions   map[uuid.UUID]uuid.UUID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tenants:    make(map[uuid.UUID]types.Tenant),
		users:      make(map[uuid.UUID]types.User),
		jobs:       make(map[uuid.UUID]types.Job),
		candidates: make(map[uuid.UUID]types.Candidate),
		funnel:     make(map[string]types.ApplicationFunnelRecord),
		sessions:   make(map[uuid.UUID]uuid.UUID),
	}
}

// PutTenant seeds a tenant record.
func (m *Memory) PutTenant(t types.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
}

// PutUser seeds a user record.
func (m *Memory) PutUser(u types.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// GetTenant retrieves a tenant by id, nil if absent.
func (m *Memory) GetTenant(_ context.Context, id uuid.UUID) (*types.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tenants[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// ListTenantsByIDs returns the tenants matching the given ids, skipping absences.
func (m *Memory) ListTenantsByIDs(_ context.Context, ids []uuid.UUID) ([]types.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Tenant, 0, len(ids))
	for _, id := range ids {
		if t, ok := m.tenants[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetUser retrieves a user by id, nil if absent.
func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetJob retrieves a job by id, nil if absent.
func (m *Memory) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		return &j, nil
	}
	return nil, nil
}

// ListJobs returns all jobs owned by the tenant.
func (m *Memory) ListJobs(_ context.Context, tenantID uuid.UUID) ([]types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Job
	for _, j := range m.jobs {
		if j.TenantID == tenantID {
			out = append(out, j)
		}
	}
	return out, nil
}

// CreateJob stores a new job record.
func (m *Memory) CreateJob(_ context.Context, job *types.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

// UpdateJobStatus persists a job status change guarded by the expected previous status.
func (m *Memory) UpdateJobStatus(_ context.Context, id uuid.UUID, from, to types.JobStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok || j.Status != from {
		return ErrStaleStatus
	}
	j.Status = to
	m.jobs[id] = j
	return nil
}

// GetCandidate retrieves a candidate by id, nil if absent.
func (m *Memory) GetCandidate(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.candidates[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// ListCandidates returns all candidates owned by the tenant.
func (m *Memory) ListCandidates(_ context.Context, tenantID uuid.UUID) ([]types.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Candidate
	for _, c := range m.candidates {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateCandidate stores a new candidate record.
func (m *Memory) CreateCandidate(_ context.Context, candidate *types.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[candidate.ID] = *candidate
	return nil
}

// UpdateCandidateStatus persists a candidate status change guarded by the expected previous status.
func (m *Memory) UpdateCandidateStatus(_ context.Context, id uuid.UUID, from, to types.CandidateStatus, resolvedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok || c.Status != from {
		return ErrStaleStatus
	}
	c.Status = to
	if resolvedAt != nil {
		c.ResolvedAt = resolvedAt
	}
	m.candidates[id] = c
	return nil
}

// ListJobViews returns all job views owned by the tenant.
func (m *Memory) ListJobViews(_ context.Context, tenantID uuid.UUID) ([]types.JobViewRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.JobViewRecord
	for _, v := range m.views {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

// ListFunnelRecords returns all funnel records owned by the tenant.
func (m *Memory) ListFunnelRecords(_ context.Context, tenantID uuid.UUID) ([]types.ApplicationFunnelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.ApplicationFunnelRecord
	for _, r := range m.funnel {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

// AppendJobView appends a job view record.
func (m *Memory) AppendJobView(_ context.Context, view *types.JobViewRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, *view)
	return nil
}

// SaveFunnelRecord creates or patches a funnel record keyed by session id.
func (m *Memory) SaveFunnelRecord(_ context.Context, record *types.ApplicationFunnelRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funnel[record.SessionID] = *record
	return nil
}

// AppendStatusChange appends an audit record.
func (m *Memory) AppendStatusChange(_ context.Context, change *types.StatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, *change)
	return nil
}

// ListStatusChanges returns the audit trail for one record, oldest first.
func (m *Memory) ListStatusChanges(_ context.Context, tenantID, entityID uuid.UUID) ([]types.StatusChange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.StatusChange
	for _, ch := range m.changes {
		if ch.TenantID == tenantID && ch.EntityID == entityID {
			out = append(out, ch)
		}
	}
	return out, nil
}

// ActiveTenant returns the session's active tenant, uuid.Nil if never set.
func (m *Memory) ActiveTenant(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID], nil
}

// SetActiveTenant persists the session's active tenant.
func (m *Memory) SetActiveTenant(_ context.Context, userID, tenantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = tenantID
	return nil
}
