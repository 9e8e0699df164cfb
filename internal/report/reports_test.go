package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

func fullWindow() analytics.DateRange {
	return analytics.DateRange{Start: reportNow.AddDate(0, 0, -30), End: reportNow}
}

func TestBuildHiringMetrics(t *testing.T) {
	cols := seedCollections()

	metrics := BuildHiringMetrics(cols, fullWindow())

	assert.Equal(t, 2, metrics.TotalJobs)
	assert.Equal(t, 2, metrics.ActiveJobs)
	assert.Equal(t, 5, metrics.TotalCandidates)
	assert.Equal(t, 2, metrics.Hires)
	assert.Equal(t, 40, metrics.ConversionRate)
	assert.Equal(t, 2, metrics.TimeToHire.Count)
	assert.Len(t, metrics.ApplicationsPerDay, 30, "one bucket per day in the window")

	sum := 0
	for _, bucket := range metrics.ApplicationsPerDay {
		sum += bucket.Count
	}
	assert.Equal(t, 5, sum)
}

func TestBuildHiringMetrics_EmptyTenant(t *testing.T) {
	metrics := BuildHiringMetrics(Collections{}, fullWindow())

	assert.Zero(t, metrics.TotalCandidates)
	assert.Zero(t, metrics.ConversionRate)
	assert.Empty(t, metrics.StatusBreakdown)
	assert.Len(t, metrics.ApplicationsPerDay, 30, "empty tenants still chart a full window")
}

func TestBuildPipelineAnalytics(t *testing.T) {
	cols := seedCollections()
	completedAt := reportNow.AddDate(0, 0, -3)
	cols.Funnel = []types.ApplicationFunnelRecord{
		{SessionID: "s1", JobID: cols.Jobs[0].ID, StartedAt: reportNow.AddDate(0, 0, -3),
			CompletedAt: &completedAt, Completed: true},
		{SessionID: "s2", JobID: cols.Jobs[0].ID, StartedAt: reportNow.AddDate(0, 0, -2)},
	}

	out := BuildPipelineAnalytics(cols, fullWindow())

	require.Len(t, out.Funnel, 5)
	assert.Equal(t, 2, out.ApplicationSessions)
	assert.Equal(t, 1, out.CompletedSessions)
	assert.Equal(t, 50, out.SessionCompletionRate)
}

func TestBuildSourcePerformance(t *testing.T) {
	cols := seedCollections()
	cols.Views = []types.JobViewRecord{
		{JobID: cols.Jobs[0].ID, ViewedAt: reportNow.AddDate(0, 0, -4)},
		{JobID: cols.Jobs[0].ID, ViewedAt: reportNow.AddDate(0, 0, -3)},
	}

	out := BuildSourcePerformance(cols, fullWindow())

	assert.Equal(t, 2, out.JobViews)
	require.NotEmpty(t, out.Sources)

	bySource := make(map[string]SourceRow)
	for _, row := range out.Sources {
		bySource[row.Source] = row
	}
	assert.Equal(t, 2, bySource["referral"].Candidates)
	assert.Equal(t, 1, bySource["referral"].Hires)
	assert.Equal(t, 50, bySource["referral"].ConversionRate)
	assert.Equal(t, 50, bySource["job-board"].ConversionRate)
	assert.Equal(t, 0, bySource["direct"].Hires)
}

func TestBuildTimeToHire(t *testing.T) {
	cols := seedCollections()

	out := BuildTimeToHire(cols, fullWindow())

	assert.Equal(t, 2, out.Overall.Count)
	require.Len(t, out.ByDepartment, 1, "only Engineering has hires")
	assert.Equal(t, "Engineering", out.ByDepartment[0].Department)
	assert.Equal(t, 2, out.ByDepartment[0].Stats.Count)
}

func TestBuildTimeToHire_NoHires(t *testing.T) {
	applied := reportNow.AddDate(0, 0, -6)
	cols := Collections{Candidates: []types.Candidate{
		{ID: uuid.New(), Status: types.CandidateScreening, AppliedAt: applied},
	}}

	out := BuildTimeToHire(cols, fullWindow())
	assert.Zero(t, out.Overall.Count)
	assert.Empty(t, out.ByDepartment)
}

func TestNamedReports_AreDeterministic(t *testing.T) {
	cols := seedCollections()

	first := BuildSourcePerformance(cols, fullWindow())
	second := BuildSourcePerformance(cols, fullWindow())
	assert.Equal(t, first, second)
}
