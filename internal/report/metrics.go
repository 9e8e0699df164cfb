// Package report composes the analytics functions into named and custom
// reports over tenant-scoped collections. It owns the closed metric-name and
// filter-key enumerations validated at the API boundary.
package report

import "fmt"

// Metric names accepted in custom report definitions. The set is closed:
// unknown names are skipped (not an error) so saved report configs keep
// working as definitions evolve, which is deliberate permissive behavior.
const (
	MetricJobCount           = "jobCount"
	MetricCandidateCount     = "candidateCount"
	MetricHireCount          = "hireCount"
	MetricConversionRate     = "conversionRate"
	MetricAvgTimeToHire      = "avgTimeToHire"
	MetricApplicationsPerJob = "applicationsPerJob"
)

// knownMetrics is the closed metric enumeration.
var knownMetrics = map[string]bool{
	MetricJobCount:           true,
	MetricCandidateCount:     true,
	MetricHireCount:          true,
	MetricConversionRate:     true,
	MetricAvgTimeToHire:      true,
	MetricApplicationsPerJob: true,
}

// KnownMetric reports whether name is a recognized metric.
func KnownMetric(name string) bool {
	return knownMetrics[name]
}

// Filter keys accepted in report requests. Unlike metrics, unknown filter
// keys are rejected: filters decide which tenant-scoped data is visible, so
// silently ignoring one would widen a report instead of narrowing it.
const (
	FilterJobID      = "jobId"
	FilterDepartment = "department"
	FilterJobType    = "jobType"
	FilterStatus     = "status"
	FilterSource     = "source"
)

var knownFilters = map[string]bool{
	FilterJobID:      true,
	FilterDepartment: true,
	FilterJobType:    true,
	FilterStatus:     true,
	FilterSource:     true,
}

// Fields accepted for group-by breakdowns.
var knownGroupFields = map[string]bool{
	"department": true,
	"jobType":    true,
	"status":     true,
	"source":     true,
}

// ErrUnknownFilter indicates a filter key outside the closed enumeration.
type ErrUnknownFilter struct {
	Key string
}

func (e *ErrUnknownFilter) Error() string {
	return fmt.Sprintf("unknown filter key: %q", e.Key)
}

// ErrUnknownGroupField indicates an unsupported group-by field.
type ErrUnknownGroupField struct {
	Field string
}

func (e *ErrUnknownGroupField) Error() string {
	return fmt.Sprintf("unknown group-by field: %q", e.Field)
}
