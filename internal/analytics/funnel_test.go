package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

func candidatesWithStatuses(statuses ...types.CandidateStatus) []types.Candidate {
	out := make([]types.Candidate, len(statuses))
	for i, s := range statuses {
		out[i] = types.Candidate{Status: s}
	}
	return out
}

func TestFunnel_PopulationAtOrBeyondStage(t *testing.T) {
	candidates := candidatesWithStatuses(
		types.CandidateNew, types.CandidateNew,
		types.CandidateScreening,
		types.CandidateInterview,
		types.CandidateOffer,
		types.CandidateHired,
	)

	stages := Funnel(HiringStages, candidates)
	require.Len(t, stages, 5)

	assert.Equal(t, 6, stages[0].Count) // everyone is at or beyond "new"
	assert.Equal(t, 4, stages[1].Count)
	assert.Equal(t, 3, stages[2].Count)
	assert.Equal(t, 2, stages[3].Count)
	assert.Equal(t, 1, stages[4].Count)
}

func TestFunnel_StageConversions(t *testing.T) {
	candidates := candidatesWithStatuses(
		types.CandidateNew, types.CandidateNew, types.CandidateNew, types.CandidateNew,
		types.CandidateScreening,
		types.CandidateInterview,
		types.CandidateHired, types.CandidateHired,
	)

	stages := Funnel(HiringStages, candidates)

	// 8 at new, 4 at screening+ -> 50%.
	assert.Equal(t, 50, stages[0].Conversion)
	// Final stage has no next stage.
	assert.Equal(t, 0, stages[4].Conversion)
}

func TestFunnel_OffPipelineStatusesExcluded(t *testing.T) {
	candidates := candidatesWithStatuses(
		types.CandidateRejected, types.CandidateWithdrawn,
		types.CandidateOnHold, types.CandidateArchived,
		types.CandidateScreening,
	)

	stages := Funnel(HiringStages, candidates)
	assert.Equal(t, 1, stages[0].Count, "off-pipeline statuses count toward no stage")
	assert.Equal(t, 1, stages[1].Count)
	assert.Equal(t, 0, stages[2].Count)
}

func TestFunnel_EmptyInputs(t *testing.T) {
	assert.Nil(t, Funnel(nil, candidatesWithStatuses(types.CandidateNew)))

	stages := Funnel(HiringStages, nil)
	require.Len(t, stages, 5)
	for _, stage := range stages {
		assert.Zero(t, stage.Count)
		assert.Zero(t, stage.Conversion, "zero population never divides by zero")
	}
}
