package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown_StatusShares(t *testing.T) {
	rows := Breakdown([]string{"hired", "hired", "rejected", "screening"})

	require.Len(t, rows, 3)
	assert.Equal(t, BreakdownRow{Value: "hired", Count: 2, Percentage: 50}, rows[0])
	assert.Equal(t, BreakdownRow{Value: "rejected", Count: 1, Percentage: 25}, rows[1])
	assert.Equal(t, BreakdownRow{Value: "screening", Count: 1, Percentage: 25}, rows[2])
}

func TestBreakdown_EmptyInputOmitsRows(t *testing.T) {
	assert.Empty(t, Breakdown(nil))
	assert.Empty(t, Breakdown([]string{}))
}

func TestBreakdown_PercentageRounding(t *testing.T) {
	// 1/3 and 2/3 round to 33 and 67.
	rows := Breakdown([]string{"a", "b", "b"})

	require.Len(t, rows, 2)
	assert.Equal(t, 67, rows[0].Percentage)
	assert.Equal(t, 33, rows[1].Percentage)
}

func TestBreakdown_DeterministicOrdering(t *testing.T) {
	rows := Breakdown([]string{"referral", "direct", "job-board"})

	// Equal counts order by value.
	require.Len(t, rows, 3)
	assert.Equal(t, "direct", rows[0].Value)
	assert.Equal(t, "job-board", rows[1].Value)
	assert.Equal(t, "referral", rows[2].Value)
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0, ConversionRate(0, 0), "empty input degrades to 0")
	assert.Equal(t, 50, ConversionRate(5, 10))
	assert.Equal(t, 100, ConversionRate(4, 4))
	assert.Equal(t, 33, ConversionRate(1, 3))
	assert.Equal(t, 0, ConversionRate(0, 25))
}
