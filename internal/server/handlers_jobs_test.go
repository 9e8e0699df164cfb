package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegranduke/ATS-sub001/internal/types"
)

func (f *testFixture) seedJob(t *testing.T, tenantID uuid.UUID, status types.JobStatus) *types.Job {
	t.Helper()
	job := &types.Job{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Title:      "Backend Engineer",
		Department: "Engineering",
		Type:       "full-time",
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, f.mem.CreateJob(context.Background(), job))
	return job
}

func TestListJobs_ScopedToActiveTenant(t *testing.T) {
	f := newTestServer(t)
	f.seedJob(t, f.tenantA, types.JobActive)
	f.seedJob(t, f.tenantB, types.JobActive)

	rec, body := f.do(t, http.MethodGet, "/api/jobs", f.tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 1)
	first := jobs[0].(map[string]any)
	assert.Equal(t, f.tenantA.String(), first["tenant_id"])
}

func TestJobTransitions(t *testing.T) {
	f := newTestServer(t)
	job := f.seedJob(t, f.tenantA, types.JobActive)

	rec, body := f.do(t, http.MethodGet, "/api/jobs/"+job.ID.String()+"/status-transitions", f.tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "active", body["currentStatus"])
	allowed := body["allowedTransitions"].([]any)
	assert.ElementsMatch(t, []any{"paused", "closed", "archived"}, allowed)
	assert.Contains(t, body, "transitionRules")
}

func TestUpdateJobStatus_ValidTransition(t *testing.T) {
	f := newTestServer(t)
	job := f.seedJob(t, f.tenantA, types.JobDraft)

	rec, body := f.do(t, http.MethodPatch, "/api/jobs/"+job.ID.String()+"/status", f.tokenA,
		map[string]string{"status": "active", "reason": "posting approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "draft", body["previousStatus"])
	assert.Equal(t, "active", body["newStatus"])
	assert.Equal(t, f.userA.String(), body["changedBy"])
	assert.Equal(t, "posting approved", body["reason"])
	assert.NotEmpty(t, body["changedAt"])

	got, err := f.mem.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobActive, got.Status)
}

func TestUpdateJobStatus_InvalidTransition(t *testing.T) {
	f := newTestServer(t)
	job := f.seedJob(t, f.tenantA, types.JobDraft)

	rec, body := f.do(t, http.MethodPatch, "/api/jobs/"+job.ID.String()+"/status", f.tokenA,
		map[string]string{"status": "closed"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	allowed := body["allowedTransitions"].([]any)
	assert.ElementsMatch(t, []any{"active", "archived"}, allowed)

	// Record is untouched after a rejected transition.
	got, err := f.mem.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobDraft, got.Status)
}

func TestUpdateJobStatus_UnknownStatusToken(t *testing.T) {
	f := newTestServer(t)
	job := f.seedJob(t, f.tenantA, types.JobDraft)

	rec, _ := f.do(t, http.MethodPatch, "/api/jobs/"+job.ID.String()+"/status", f.tokenA,
		map[string]string{"status": "launched"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateJobStatus_CrossTenantIsForbidden(t *testing.T) {
	f := newTestServer(t)
	job := f.seedJob(t, f.tenantB, types.JobDraft)

	rec, _ := f.do(t, http.MethodPatch, "/api/jobs/"+job.ID.String()+"/status", f.tokenA,
		map[string]string{"status": "active"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	got, err := f.mem.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobDraft, got.Status)
}

func TestUpdateJobStatus_AbsentJobIsNotFound(t *testing.T) {
	f := newTestServer(t)

	rec, _ := f.do(t, http.MethodPatch, "/api/jobs/"+uuid.NewString()+"/status", f.tokenA,
		map[string]string{"status": "active"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
