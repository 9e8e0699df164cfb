package analytics

import (
	"math"
	"sort"
)

// BreakdownRow is one group of a field breakdown.
type BreakdownRow struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Breakdown groups the given field values and returns one row per distinct
// value with its share of the total, rounded to whole percent. A zero total
// produces no rows rather than a division by zero. Rows are ordered by count
// descending, then value ascending, so output is deterministic.
func Breakdown(values []string) []BreakdownRow {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	total := len(values)
	rows := make([]BreakdownRow, 0, len(counts))
	for value, count := range counts {
		rows = append(rows, BreakdownRow{
			Value:      value,
			Count:      count,
			Percentage: roundPercent(count, total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Value < rows[j].Value
	})
	return rows
}

// ConversionRate returns round(100 * converted / total), 0 when total is 0.
func ConversionRate(converted, total int) int {
	return roundPercent(converted, total)
}

// roundPercent rounds 100*part/total to the nearest whole percent.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
