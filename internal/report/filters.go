package report

import (
	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// Collections holds the tenant-scoped inputs a report is computed from.
// The store layer produces these already scoped to the active tenant; nothing
// in this package filters by tenant.
type Collections struct {
	Jobs       []types.Job
	Candidates []types.Candidate
	Views      []types.JobViewRecord
	Funnel     []types.ApplicationFunnelRecord
}

// ValidateFilters rejects any filter key outside the closed enumeration.
func ValidateFilters(filters map[string]string) error {
	for key := range filters {
		if !knownFilters[key] {
			return &ErrUnknownFilter{Key: key}
		}
	}
	return nil
}

// Apply narrows the collections to records matching every filter exactly,
// then to the window (jobs by creation, candidates by application, events by
// their own timestamps). A nil window keeps everything.
func (c Collections) Apply(filters map[string]string, window *analytics.DateRange) Collections {
	jobByID := make(map[uuid.UUID]types.Job, len(c.Jobs))
	for _, job := range c.Jobs {
		jobByID[job.ID] = job
	}

	out := Collections{}
	for _, job := range c.Jobs {
		if !jobMatches(job, filters) {
			continue
		}
		if window != nil && !window.Contains(job.CreatedAt) {
			continue
		}
		out.Jobs = append(out.Jobs, job)
	}
	for _, candidate := range c.Candidates {
		if !candidateMatches(candidate, jobByID, filters) {
			continue
		}
		if window != nil && !window.Contains(candidate.AppliedAt) {
			continue
		}
		out.Candidates = append(out.Candidates, candidate)
	}
	for _, view := range c.Views {
		if jobID, ok := filters[FilterJobID]; ok && view.JobID.String() != jobID {
			continue
		}
		if window != nil && !window.Contains(view.ViewedAt) {
			continue
		}
		out.Views = append(out.Views, view)
	}
	for _, record := range c.Funnel {
		if jobID, ok := filters[FilterJobID]; ok && record.JobID.String() != jobID {
			continue
		}
		if window != nil && !window.Contains(record.StartedAt) {
			continue
		}
		out.Funnel = append(out.Funnel, record)
	}
	return out
}

func jobMatches(job types.Job, filters map[string]string) bool {
	for key, value := range filters {
		switch key {
		case FilterJobID:
			if job.ID.String() != value {
				return false
			}
		case FilterDepartment:
			if job.Department != value {
				return false
			}
		case FilterJobType:
			if job.Type != value {
				return false
			}
		case FilterStatus:
			if string(job.Status) != value {
				return false
			}
		case FilterSource:
			// Source is a candidate field; it does not narrow jobs.
		}
	}
	return true
}

func candidateMatches(candidate types.Candidate, jobByID map[uuid.UUID]types.Job, filters map[string]string) bool {
	for key, value := range filters {
		switch key {
		case FilterJobID:
			if candidate.JobID == nil || candidate.JobID.String() != value {
				return false
			}
		case FilterStatus:
			if string(candidate.Status) != value {
				return false
			}
		case FilterSource:
			if candidate.Source != value {
				return false
			}
		case FilterDepartment, FilterJobType:
			// Job-level filters narrow candidates through their job reference.
			if candidate.JobID == nil {
				return false
			}
			job, ok := jobByID[*candidate.JobID]
			if !ok {
				return false
			}
			if key == FilterDepartment && job.Department != value {
				return false
			}
			if key == FilterJobType && job.Type != value {
				return false
			}
		}
	}
	return true
}

// groupValue extracts the group-by field value for a candidate.
func groupValue(candidate types.Candidate, jobByID map[uuid.UUID]types.Job, field string) string {
	switch field {
	case "status":
		return string(candidate.Status)
	case "source":
		return candidate.Source
	case "department", "jobType":
		if candidate.JobID == nil {
			return ""
		}
		job, ok := jobByID[*candidate.JobID]
		if !ok {
			return ""
		}
		if field == "department" {
			return job.Department
		}
		return job.Type
	default:
		return ""
	}
}
