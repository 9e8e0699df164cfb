package analytics

import "time"

// dayFormat is the bucket key format for daily time series.
const dayFormat = "2006-01-02"

// DayCount is one calendar-day bucket of a time series.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DailyCounts buckets timestamps into one count per calendar day across the
// window, zero-filling days with no events. Charts depend on a uniform bucket
// count, so empty days are never skipped. Timestamps outside the window are
// ignored; the sum of all buckets equals the number of in-window timestamps.
func DailyCounts(timestamps []time.Time, window DateRange) []DayCount {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		if window.Contains(ts) {
			// Bucket in the window's zone so a mixed-zone timestamp cannot
			// format to a day outside the generated sequence.
			counts[ts.In(window.Start.Location()).Format(dayFormat)]++
		}
	}

	var series []DayCount
	dayStart := time.Date(window.Start.Year(), window.Start.Month(), window.Start.Day(),
		0, 0, 0, 0, window.Start.Location())
	for day := dayStart; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		series = append(series, DayCount{Date: key, Count: counts[key]})
	}
	return series
}
