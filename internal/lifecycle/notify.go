package lifecycle

import (
	"context"
	"log"

	"github.com/thegranduke/ATS-sub001/internal/types"
)

// Notifier delivers lifecycle-change notifications (email, webhooks). It is
// an external collaborator; delivery failure never affects the transition.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, change types.StatusChange)
}

// significantJobStatuses are the job transitions worth notifying staff about.
var significantJobStatuses = map[types.JobStatus]bool{
	types.JobActive:   true,
	types.JobClosed:   true,
	types.JobArchived: true,
}

// significantCandidateStatuses are the candidate transitions worth notifying about.
var significantCandidateStatuses = map[types.CandidateStatus]bool{
	types.CandidateHired:    true,
	types.CandidateRejected: true,
	types.CandidateOffer:    true,
}

// LogNotifier is the default Notifier: it logs the event and nothing else.
type LogNotifier struct{}

// NotifyStatusChange logs the lifecycle change.
func (LogNotifier) NotifyStatusChange(_ context.Context, change types.StatusChange) {
	log.Printf("[lifecycle] %s %s: %s -> %s (by %s)",
		change.EntityType, change.EntityID, change.From, change.To, change.ChangedBy)
}
