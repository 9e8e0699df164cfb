package report

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/types"
	"golang.org/x/sync/errgroup"
)

// Input is a custom report request after boundary validation.
type Input struct {
	Name    string
	Metrics []string
	Filters map[string]string
	GroupBy string
	Window  *analytics.DateRange
}

// GroupRow is the metric set computed for one distinct group value.
type GroupRow struct {
	Group   string         `json:"group"`
	Metrics map[string]any `json:"metrics"`
}

// Report is the computed custom report.
type Report struct {
	Name    string               `json:"name,omitempty"`
	Window  *analytics.DateRange `json:"window,omitempty"`
	Metrics map[string]any       `json:"metrics"`
	Groups  []GroupRow           `json:"groups,omitempty"`
	Skipped []string             `json:"skippedMetrics,omitempty"`
}

// Build computes the requested metrics over the collections. Filter keys and
// the group-by field are validated strictly; unrecognized metric names are
// collected into Skipped and otherwise ignored. Group rows are computed
// concurrently: every metric function is pure over its own slice of the data.
func Build(ctx context.Context, input Input, cols Collections) (*Report, error) {
	if err := ValidateFilters(input.Filters); err != nil {
		return nil, err
	}
	if input.GroupBy != "" && !knownGroupFields[input.GroupBy] {
		return nil, &ErrUnknownGroupField{Field: input.GroupBy}
	}

	scoped := cols.Apply(input.Filters, input.Window)

	recognized := make([]string, 0, len(input.Metrics))
	var skipped []string
	for _, name := range input.Metrics {
		if KnownMetric(name) {
			recognized = append(recognized, name)
		} else {
			skipped = append(skipped, name)
		}
	}

	out := &Report{
		Name:    input.Name,
		Window:  input.Window,
		Metrics: computeMetrics(recognized, scoped),
		Skipped: skipped,
	}

	if input.GroupBy != "" {
		groups, err := buildGroups(ctx, input.GroupBy, recognized, scoped)
		if err != nil {
			return nil, err
		}
		out.Groups = groups
	}
	return out, nil
}

// buildGroups computes one row per distinct group value, rows in parallel.
func buildGroups(ctx context.Context, field string, metrics []string, cols Collections) ([]GroupRow, error) {
	jobByID := make(map[uuid.UUID]types.Job, len(cols.Jobs))
	for _, job := range cols.Jobs {
		jobByID[job.ID] = job
	}

	byGroup := make(map[string]Collections)
	for _, candidate := range cols.Candidates {
		value := groupValue(candidate, jobByID, field)
		if value == "" {
			continue
		}
		group := byGroup[value]
		group.Candidates = append(group.Candidates, candidate)
		byGroup[value] = group
	}
	for _, job := range cols.Jobs {
		value := ""
		switch field {
		case "department":
			value = job.Department
		case "jobType":
			value = job.Type
		}
		if value == "" {
			continue
		}
		group := byGroup[value]
		group.Jobs = append(group.Jobs, job)
		byGroup[value] = group
	}

	values := make([]string, 0, len(byGroup))
	for value := range byGroup {
		values = append(values, value)
	}
	sort.Strings(values)

	rows := make([]GroupRow, len(values))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for i, value := range values {
		g.Go(func() error {
			row := GroupRow{Group: value, Metrics: computeMetrics(metrics, byGroup[value])}
			mu.Lock()
			rows[i] = row
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// computeMetrics evaluates each recognized metric over the collections.
func computeMetrics(metrics []string, cols Collections) map[string]any {
	out := make(map[string]any, len(metrics))
	for _, name := range metrics {
		switch name {
		case MetricJobCount:
			out[name] = len(cols.Jobs)
		case MetricCandidateCount:
			out[name] = len(cols.Candidates)
		case MetricHireCount:
			out[name] = hireCount(cols.Candidates)
		case MetricConversionRate:
			out[name] = analytics.ConversionRate(hireCount(cols.Candidates), len(cols.Candidates))
		case MetricAvgTimeToHire:
			out[name] = analytics.TimeToHire(hireSpans(cols.Candidates)).Average
		case MetricApplicationsPerJob:
			out[name] = applicationsPerJob(cols)
		}
	}
	return out
}

func hireCount(candidates []types.Candidate) int {
	count := 0
	for _, c := range candidates {
		if c.Status == types.CandidateHired {
			count++
		}
	}
	return count
}

// hireSpans extracts application-to-resolution spans for hired candidates.
func hireSpans(candidates []types.Candidate) []analytics.HireSpan {
	var spans []analytics.HireSpan
	for _, c := range candidates {
		if c.Status == types.CandidateHired && c.ResolvedAt != nil {
			spans = append(spans, analytics.HireSpan{
				ApplicationDate: c.AppliedAt,
				ResolutionDate:  *c.ResolvedAt,
			})
		}
	}
	return spans
}

func applicationsPerJob(cols Collections) float64 {
	if len(cols.Jobs) == 0 {
		return 0
	}
	ratio := float64(len(cols.Candidates)) / float64(len(cols.Jobs))
	return math.Round(ratio*100) / 100
}
