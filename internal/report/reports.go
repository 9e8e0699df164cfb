package report

import (
	"time"

	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// HiringMetrics is the headline dashboard payload.
type HiringMetrics struct {
	Window             analytics.DateRange       `json:"window"`
	TotalJobs          int                       `json:"totalJobs"`
	ActiveJobs         int                       `json:"activeJobs"`
	TotalCandidates    int                       `json:"totalCandidates"`
	Hires              int                       `json:"hires"`
	ConversionRate     int                       `json:"conversionRate"`
	TimeToHire         analytics.TimeToHireStats `json:"timeToHire"`
	ApplicationsPerDay []analytics.DayCount      `json:"applicationsPerDay"`
	StatusBreakdown    []analytics.BreakdownRow  `json:"statusBreakdown"`
}

// BuildHiringMetrics computes the hiring-metrics report over scoped collections.
func BuildHiringMetrics(cols Collections, window analytics.DateRange) HiringMetrics {
	scoped := cols.Apply(nil, &window)

	activeJobs := 0
	for _, job := range scoped.Jobs {
		if job.Status == types.JobActive {
			activeJobs++
		}
	}

	return HiringMetrics{
		Window:             window,
		TotalJobs:          len(scoped.Jobs),
		ActiveJobs:         activeJobs,
		TotalCandidates:    len(scoped.Candidates),
		Hires:              hireCount(scoped.Candidates),
		ConversionRate:     analytics.ConversionRate(hireCount(scoped.Candidates), len(scoped.Candidates)),
		TimeToHire:         analytics.TimeToHire(hireSpans(scoped.Candidates)),
		ApplicationsPerDay: analytics.DailyCounts(appliedTimes(scoped.Candidates), window),
		StatusBreakdown:    analytics.Breakdown(candidateStatuses(scoped.Candidates)),
	}
}

// PipelineAnalytics describes where candidates sit in the pipeline and where
// they drop off.
type PipelineAnalytics struct {
	Window                analytics.DateRange      `json:"window"`
	Funnel                []analytics.FunnelStage  `json:"funnel"`
	StatusBreakdown       []analytics.BreakdownRow `json:"statusBreakdown"`
	ApplicationSessions   int                      `json:"applicationSessions"`
	CompletedSessions     int                      `json:"completedSessions"`
	SessionCompletionRate int                      `json:"sessionCompletionRate"`
}

// BuildPipelineAnalytics computes the pipeline-analytics report.
func BuildPipelineAnalytics(cols Collections, window analytics.DateRange) PipelineAnalytics {
	scoped := cols.Apply(nil, &window)

	completed := 0
	for _, record := range scoped.Funnel {
		if record.Completed {
			completed++
		}
	}

	return PipelineAnalytics{
		Window:                window,
		Funnel:                analytics.Funnel(analytics.HiringStages, scoped.Candidates),
		StatusBreakdown:       analytics.Breakdown(candidateStatuses(scoped.Candidates)),
		ApplicationSessions:   len(scoped.Funnel),
		CompletedSessions:     completed,
		SessionCompletionRate: analytics.ConversionRate(completed, len(scoped.Funnel)),
	}
}

// SourceRow summarizes one candidate source.
type SourceRow struct {
	Source         string `json:"source"`
	Candidates     int    `json:"candidates"`
	Hires          int    `json:"hires"`
	ConversionRate int    `json:"conversionRate"`
}

// SourcePerformance ranks candidate sources by volume and conversion.
type SourcePerformance struct {
	Window   analytics.DateRange      `json:"window"`
	Sources  []SourceRow              `json:"sources"`
	Shares   []analytics.BreakdownRow `json:"shares"`
	JobViews int                      `json:"jobViews"`
}

// BuildSourcePerformance computes the source-performance report.
func BuildSourcePerformance(cols Collections, window analytics.DateRange) SourcePerformance {
	scoped := cols.Apply(nil, &window)

	type tally struct{ candidates, hires int }
	bySource := make(map[string]*tally)
	for _, candidate := range scoped.Candidates {
		source := candidate.Source
		if source == "" {
			source = "unknown"
		}
		if bySource[source] == nil {
			bySource[source] = &tally{}
		}
		bySource[source].candidates++
		if candidate.Status == types.CandidateHired {
			bySource[source].hires++
		}
	}

	shares := analytics.Breakdown(candidateSources(scoped.Candidates))

	// Shares are already ordered by count; reuse that ordering for the rows.
	rows := make([]SourceRow, 0, len(shares))
	for _, share := range shares {
		t := bySource[share.Value]
		rows = append(rows, SourceRow{
			Source:         share.Value,
			Candidates:     t.candidates,
			Hires:          t.hires,
			ConversionRate: analytics.ConversionRate(t.hires, t.candidates),
		})
	}

	return SourcePerformance{
		Window:   window,
		Sources:  rows,
		Shares:   shares,
		JobViews: len(scoped.Views),
	}
}

// TimeToHireReport breaks the time-to-hire distribution down by department.
type TimeToHireReport struct {
	Window       analytics.DateRange       `json:"window"`
	Overall      analytics.TimeToHireStats `json:"overall"`
	ByDepartment []DepartmentTimeToHire    `json:"byDepartment"`
}

// DepartmentTimeToHire is the per-department slice of the distribution.
type DepartmentTimeToHire struct {
	Department string                    `json:"department"`
	Stats      analytics.TimeToHireStats `json:"stats"`
}

// BuildTimeToHire computes the time-to-hire report.
func BuildTimeToHire(cols Collections, window analytics.DateRange) TimeToHireReport {
	scoped := cols.Apply(nil, &window)

	jobDepartment := make(map[string]string, len(scoped.Jobs))
	for _, job := range scoped.Jobs {
		jobDepartment[job.ID.String()] = job.Department
	}

	byDept := make(map[string][]analytics.HireSpan)
	for _, candidate := range scoped.Candidates {
		if candidate.Status != types.CandidateHired || candidate.ResolvedAt == nil || candidate.JobID == nil {
			continue
		}
		dept := jobDepartment[candidate.JobID.String()]
		if dept == "" {
			continue
		}
		byDept[dept] = append(byDept[dept], analytics.HireSpan{
			ApplicationDate: candidate.AppliedAt,
			ResolutionDate:  *candidate.ResolvedAt,
		})
	}

	departments := make([]DepartmentTimeToHire, 0, len(byDept))
	for _, share := range analytics.Breakdown(hiredDepartments(scoped.Candidates, jobDepartment)) {
		departments = append(departments, DepartmentTimeToHire{
			Department: share.Value,
			Stats:      analytics.TimeToHire(byDept[share.Value]),
		})
	}

	return TimeToHireReport{
		Window:       window,
		Overall:      analytics.TimeToHire(hireSpans(scoped.Candidates)),
		ByDepartment: departments,
	}
}

func candidateStatuses(candidates []types.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = string(c.Status)
	}
	return out
}

func candidateSources(candidates []types.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		if c.Source == "" {
			out[i] = "unknown"
		} else {
			out[i] = c.Source
		}
	}
	return out
}

func hiredDepartments(candidates []types.Candidate, jobDepartment map[string]string) []string {
	var out []string
	for _, c := range candidates {
		if c.Status != types.CandidateHired || c.ResolvedAt == nil || c.JobID == nil {
			continue
		}
		if dept := jobDepartment[c.JobID.String()]; dept != "" {
			out = append(out, dept)
		}
	}
	return out
}

func appliedTimes(candidates []types.Candidate) []time.Time {
	out := make([]time.Time, len(candidates))
	for i, c := range candidates {
		out[i] = c.AppliedAt
	}
	return out
}
