// Package lifecycle holds the Job and Candidate status state machines and the
// engine that applies validated transitions to tenant-scoped records.
package lifecycle

import (
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// jobGraph declares the legal out-edges per job status. The maps are built
// once at package init and never mutated; archived is terminal.
var jobGraph = map[types.JobStatus][]types.JobStatus{
	types.JobDraft:    {types.JobActive, types.JobArchived},
	types.JobActive:   {types.JobPaused, types.JobClosed, types.JobArchived},
	types.JobPaused:   {types.JobActive, types.JobClosed, types.JobArchived},
	types.JobClosed:   {types.JobActive, types.JobArchived},
	types.JobArchived: {},
}

// candidateGraph declares the legal out-edges per candidate status;
// archived is terminal.
var candidateGraph = map[types.CandidateStatus][]types.CandidateStatus{
	types.CandidateNew:       {types.CandidateScreening, types.CandidateRejected},
	types.CandidateScreening: {types.CandidateInterview, types.CandidateRejected, types.CandidateOnHold},
	types.CandidateInterview: {types.CandidateOffer, types.CandidateRejected, types.CandidateOnHold},
	types.CandidateOffer:     {types.CandidateHired, types.CandidateRejected, types.CandidateWithdrawn},
	types.CandidateHired:     {types.CandidateArchived},
	types.CandidateRejected:  {types.CandidateArchived},
	types.CandidateWithdrawn: {types.CandidateArchived},
	types.CandidateOnHold:    {types.CandidateScreening, types.CandidateInterview, types.CandidateRejected},
	types.CandidateArchived:  {},
}

// AllowedJobTransitions returns the out-edge set for a job status.
// Unknown statuses have no out-edges.
func AllowedJobTransitions(current types.JobStatus) []types.JobStatus {
	edges := jobGraph[current]
	out := make([]types.JobStatus, len(edges))
	copy(out, edges)
	return out
}

// AllowedCandidateTransitions returns the out-edge set for a candidate status.
func AllowedCandidateTransitions(current types.CandidateStatus) []types.CandidateStatus {
	edges := candidateGraph[current]
	out := make([]types.CandidateStatus, len(edges))
	copy(out, edges)
	return out
}

// ValidateJobTransition reports whether proposed is a direct out-edge of
// current. Multi-hop transitions are never permitted in one call: draft
// cannot reach closed without passing through active.
func ValidateJobTransition(current, proposed types.JobStatus) bool {
	for _, next := range jobGraph[current] {
		if next == proposed {
			return true
		}
	}
	return false
}

// ValidateCandidateTransition reports whether proposed is a direct out-edge
// of current.
func ValidateCandidateTransition(current, proposed types.CandidateStatus) bool {
	for _, next := range candidateGraph[current] {
		if next == proposed {
			return true
		}
	}
	return false
}

// JobTransitionRules returns the full job graph for clients rendering legal
// next steps. The result is a fresh copy per call.
func JobTransitionRules() map[types.JobStatus][]types.JobStatus {
	rules := make(map[types.JobStatus][]types.JobStatus, len(jobGraph))
	for status := range jobGraph {
		rules[status] = AllowedJobTransitions(status)
	}
	return rules
}

// CandidateTransitionRules returns the full candidate graph.
func CandidateTransitionRules() map[types.CandidateStatus][]types.CandidateStatus {
	rules := make(map[types.CandidateStatus][]types.CandidateStatus, len(candidateGraph))
	for status := range candidateGraph {
		rules[status] = AllowedCandidateTransitions(status)
	}
	return rules
}
