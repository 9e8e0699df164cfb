//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return db
}

func seedTenant(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	tenantID := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, created_at) VALUES ($1, $2, NOW())`,
		tenantID, "Integration Test Co "+tenantID.String()[:8],
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM tenants WHERE id = $1`, tenantID)
	})
	return tenantID
}

func TestIntegration_Job_StatusUpdate(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tenantID := seedTenant(t, db)

	job := &types.Job{
		TenantID:  tenantID,
		Title:     "Backend Engineer",
		Status:    types.JobDraft,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateJob(ctx, job))
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, job.ID)
	})

	require.NoError(t, db.UpdateJobStatus(ctx, job.ID, types.JobDraft, types.JobActive))

	got, err := db.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.JobActive, got.Status)

	// Same transition again loses the race against itself.
	err = db.UpdateJobStatus(ctx, job.ID, types.JobDraft, types.JobActive)
	assert.ErrorIs(t, err, store.ErrStaleStatus)
}

func TestIntegration_Candidate_ResolvedAtStamp(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tenantID := seedTenant(t, db)

	candidate := &types.Candidate{
		TenantID:  tenantID,
		Name:      "Ada Test",
		Status:    types.CandidateOffer,
		AppliedAt: time.Now().UTC().Add(-21 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateCandidate(ctx, candidate))
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM candidates WHERE id = $1`, candidate.ID)
	})

	resolved := time.Now().UTC()
	require.NoError(t, db.UpdateCandidateStatus(ctx, candidate.ID, types.CandidateOffer, types.CandidateHired, &resolved))

	got, err := db.GetCandidate(ctx, candidate.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.CandidateHired, got.Status)
	require.NotNil(t, got.ResolvedAt)
	assert.WithinDuration(t, resolved, *got.ResolvedAt, time.Second)
}

func TestIntegration_FunnelSession_SaveAndPatch(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tenantID := seedTenant(t, db)

	job := &types.Job{
		TenantID:  tenantID,
		Title:     "Data Engineer",
		Status:    types.JobActive,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateJob(ctx, job))
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM application_funnel WHERE tenant_id = $1`, tenantID)
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, job.ID)
	})

	record := &types.ApplicationFunnelRecord{
		SessionID: "it-" + uuid.NewString()[:8],
		JobID:     job.ID,
		TenantID:  tenantID,
		StartedAt: time.Now().UTC().Add(-30 * time.Minute),
		Device:    "desktop",
		Source:    "referral",
	}
	require.NoError(t, db.SaveFunnelRecord(ctx, record))

	records, err := db.ListFunnelRecords(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Completed)
	assert.Nil(t, records[0].CompletedAt)

	// Closing the session patches the existing row in place.
	done := time.Now().UTC()
	record.CompletedAt = &done
	record.Completed = true
	record.Converted = true
	require.NoError(t, db.SaveFunnelRecord(ctx, record))

	records, err = db.ListFunnelRecords(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, records, 1, "resaving the same session must not add a row")
	assert.True(t, records[0].Completed)
	assert.True(t, records[0].Converted)
	require.NotNil(t, records[0].CompletedAt)
	assert.WithinDuration(t, done, *records[0].CompletedAt, time.Second)
	assert.Equal(t, "referral", records[0].Source)
}

func TestIntegration_JobView_AppendOnly(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tenantID := seedTenant(t, db)

	job := &types.Job{
		TenantID:  tenantID,
		Title:     "SRE",
		Status:    types.JobActive,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateJob(ctx, job))
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM job_views WHERE tenant_id = $1`, tenantID)
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, job.ID)
	})

	first := time.Now().UTC().Add(-2 * time.Hour)
	for i := 0; i < 2; i++ {
		view := &types.JobViewRecord{
			JobID:    job.ID,
			TenantID: tenantID,
			ViewedAt: first.Add(time.Duration(i) * time.Hour),
			Device:   "mobile",
		}
		require.NoError(t, db.AppendJobView(ctx, view))
	}

	views, err := db.ListJobViews(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.WithinDuration(t, first, views[0].ViewedAt, time.Second, "oldest first")
	assert.Equal(t, job.ID, views[1].JobID)
}

func TestIntegration_GetTenant_Absent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	tenant, err := db.GetTenant(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, tenant)
}

func TestIntegration_Session_ActiveTenant(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	tenantID := seedTenant(t, db)
	userID := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, tenant_id, name, email, role, created_at) VALUES ($1, $2, $3, $4, $5, NOW())`,
		userID, tenantID, "Session Test", userID.String()[:8]+"@test.example.com", types.RoleMember,
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM user_sessions WHERE user_id = $1`, userID)
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	})

	active, err := db.ActiveTenant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, active)

	require.NoError(t, db.SetActiveTenant(ctx, userID, tenantID))

	active, err = db.ActiveTenant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, active)
}
