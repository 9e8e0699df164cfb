package analytics

import "github.com/thegranduke/ATS-sub001/internal/types"

// HiringStages is the default ordered pipeline used for funnel analysis.
var HiringStages = []types.CandidateStatus{
	types.CandidateNew,
	types.CandidateScreening,
	types.CandidateInterview,
	types.CandidateOffer,
	types.CandidateHired,
}

// FunnelStage is one row of a funnel analysis.
type FunnelStage struct {
	Stage types.CandidateStatus `json:"stage"`
	// Count is the population currently at or beyond this stage.
	Count int `json:"count"`
	// Conversion is the stage-to-stage percentage advancing to the next
	// stage: round(100 * countAtOrBeyondNext / countAtOrBeyondCurrent).
	// It is 0 for the final stage.
	Conversion int `json:"conversion"`
}

// Funnel computes per-stage population and drop-off over an ordered stage
// list. A candidate is "at or beyond" a stage if its current status appears
// at that stage or later in the list; statuses outside the list (rejected,
// withdrawn, on-hold, archived) count toward no stage.
func Funnel(stages []types.CandidateStatus, candidates []types.Candidate) []FunnelStage {
	if len(stages) == 0 {
		return nil
	}

	rank := make(map[types.CandidateStatus]int, len(stages))
	for i, stage := range stages {
		rank[stage] = i
	}

	atOrBeyond := make([]int, len(stages))
	for _, candidate := range candidates {
		idx, ok := rank[candidate.Status]
		if !ok {
			continue
		}
		for i := 0; i <= idx; i++ {
			atOrBeyond[i]++
		}
	}

	out := make([]FunnelStage, len(stages))
	for i, stage := range stages {
		row := FunnelStage{Stage: stage, Count: atOrBeyond[i]}
		if i+1 < len(stages) {
			row.Conversion = roundPercent(atOrBeyond[i+1], atOrBeyond[i])
		}
		out[i] = row
	}
	return out
}
