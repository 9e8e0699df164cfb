// Package analytics computes hiring metrics over tenant-scoped, in-memory
// collections. Every function here is deterministic and side-effect free, and
// none performs tenant filtering: collections arriving here were already
// scoped by the store layer, which is the separation-of-concerns invariant
// this package is built around. Empty input is a normal state (a new tenant's
// dashboard), so rates and percentiles degrade to zero instead of erroring.
package analytics

import (
	"fmt"
	"time"
)

// Period tokens accepted for report windows.
const (
	Period7d     = "7d"
	Period30d    = "30d"
	Period90d    = "90d"
	Period1y     = "1y"
	PeriodCustom = "custom"
)

// DateRange is a half-open [Start, End) reporting window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether ts falls inside the window.
func (r DateRange) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && ts.Before(r.End)
}

// ErrBadDateRange indicates an unusable period token or start/end pair.
type ErrBadDateRange struct {
	Reason string
}

func (e *ErrBadDateRange) Error() string {
	return fmt.Sprintf("invalid date range: %s", e.Reason)
}

// ResolveDateRange turns a period token or explicit start/end pair into a
// concrete window. The window end defaults to now; "custom" (or an empty
// period) requires an explicit start. Fixed tokens are day counts back from
// now: 7d, 30d, 90d, 1y.
func ResolveDateRange(period string, start, end *time.Time, now time.Time) (DateRange, error) {
	resolvedEnd := now
	if end != nil {
		resolvedEnd = *end
	}

	var resolvedStart time.Time
	switch period {
	case Period7d:
		resolvedStart = now.AddDate(0, 0, -7)
	case Period30d:
		resolvedStart = now.AddDate(0, 0, -30)
	case Period90d:
		resolvedStart = now.AddDate(0, 0, -90)
	case Period1y:
		resolvedStart = now.AddDate(-1, 0, 0)
	case PeriodCustom, "":
		if start == nil {
			return DateRange{}, &ErrBadDateRange{Reason: "custom period requires a start date"}
		}
		resolvedStart = *start
	default:
		return DateRange{}, &ErrBadDateRange{Reason: fmt.Sprintf("unknown period token %q", period)}
	}

	if !resolvedStart.Before(resolvedEnd) {
		return DateRange{}, &ErrBadDateRange{Reason: "start must be before end"}
	}
	return DateRange{Start: resolvedStart, End: resolvedEnd}, nil
}
