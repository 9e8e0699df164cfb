package analytics

import (
	"math"
	"sort"
	"time"
)

// HireSpan is one candidate's application-to-resolution interval.
type HireSpan struct {
	ApplicationDate time.Time
	ResolutionDate  time.Time
}

// Days returns the elapsed whole days of the span, never negative.
func (s HireSpan) Days() int {
	days := int(s.ResolutionDate.Sub(s.ApplicationDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// TimeToHireStats is the distribution summary of time-to-hire in days.
type TimeToHireStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	P25     int     `json:"p25"`
	P75     int     `json:"p75"`
	P90     int     `json:"p90"`
}

// TimeToHire summarizes elapsed-day spans: mean, median (even counts average
// the two middle values), and nearest-rank percentiles. Empty input yields
// the zero summary.
func TimeToHire(spans []HireSpan) TimeToHireStats {
	if len(spans) == 0 {
		return TimeToHireStats{}
	}

	days := make([]int, len(spans))
	for i, span := range spans {
		days[i] = span.Days()
	}
	sort.Ints(days)

	return TimeToHireStats{
		Count:   len(days),
		Average: MeanDays(days),
		Median:  MedianDays(days),
		P25:     Percentile(days, 25),
		P75:     Percentile(days, 75),
		P90:     Percentile(days, 90),
	}
}

// MeanDays returns the arithmetic mean, 0 for empty input.
func MeanDays(days []int) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d
	}
	return float64(sum) / float64(len(days))
}

// MedianDays returns the median; even counts average the two middle values.
// The input does not need to be sorted.
func MedianDays(days []int) float64 {
	n := len(days)
	if n == 0 {
		return 0
	}
	sorted := make([]int, n)
	copy(sorted, days)
	sort.Ints(sorted)

	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Percentile returns the nearest-rank percentile: the value at rank
// ceil(p/100 * n) in the sorted sample, with the zero-based index clamped to
// at least 0. Empty input yields 0. The input does not need to be sorted.
func Percentile(days []int, p int) int {
	n := len(days)
	if n == 0 {
		return 0
	}
	sorted := make([]int, n)
	copy(sorted, days)
	sort.Ints(sorted)

	rank := int(math.Ceil(float64(p)/100*float64(n))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= n {
		rank = n - 1
	}
	return sorted[rank]
}
