package lifecycle

import "fmt"

// ErrInvalidTransition indicates a proposed status that is not a direct
// out-edge of the record's current status. Allowed always carries the legal
// next statuses so callers can self-correct; it is empty for terminal states.
type ErrInvalidTransition struct {
	Current  string
	Proposed string
	Allowed  []string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Proposed)
}
