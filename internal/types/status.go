package types

import "fmt"

// JobStatus is the lifecycle status of a Job.
type JobStatus string

// Job status values
const (
	JobDraft    JobStatus = "draft"
	JobActive   JobStatus = "active"
	JobPaused   JobStatus = "paused"
	JobClosed   JobStatus = "closed"
	JobArchived JobStatus = "archived"
)

// CandidateStatus is the lifecycle status of a Candidate.
type CandidateStatus string

// Candidate status values. "new" is the initial status assigned on application.
const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffer     CandidateStatus = "offer"
	CandidateHired     CandidateStatus = "hired"
	CandidateRejected  CandidateStatus = "rejected"
	CandidateWithdrawn CandidateStatus = "withdrawn"
	CandidateOnHold    CandidateStatus = "on-hold"
	CandidateArchived  CandidateStatus = "archived"
)

// ErrUnknownStatus indicates a status token outside the declared enumeration.
type ErrUnknownStatus struct {
	Entity string
	Token  string
}

func (e *ErrUnknownStatus) Error() string {
	return fmt.Sprintf("unknown %s status: %q", e.Entity, e.Token)
}

// ParseJobStatus parses a status token into a JobStatus.
func ParseJobStatus(token string) (JobStatus, error) {
	switch JobStatus(token) {
	case JobDraft, JobActive, JobPaused, JobClosed, JobArchived:
		return JobStatus(token), nil
	default:
		return "", &ErrUnknownStatus{Entity: "job", Token: token}
	}
}

// ParseCandidateStatus parses a status token into a CandidateStatus.
// "applied" is accepted as an alias for "new" (both appear in historical data).
func ParseCandidateStatus(token string) (CandidateStatus, error) {
	if token == "applied" {
		return CandidateNew, nil
	}
	switch CandidateStatus(token) {
	case CandidateNew, CandidateScreening, CandidateInterview, CandidateOffer,
		CandidateHired, CandidateRejected, CandidateWithdrawn, CandidateOnHold,
		CandidateArchived:
		return CandidateStatus(token), nil
	default:
		return "", &ErrUnknownStatus{Entity: "candidate", Token: token}
	}
}

// TerminalCandidateStatuses are statuses that end a candidate's pipeline run
// (the archived parking state is reached only from these).
var TerminalCandidateStatuses = []CandidateStatus{
	CandidateHired, CandidateRejected, CandidateWithdrawn,
}
