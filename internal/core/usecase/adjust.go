package usecase

import (
	"sort"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type adjustedList []domain.Candidate

// applyAdjustments scales each fused score by the extraction-confidence
// factor and adds every matching boost from the policy table. Adjustment
// only reorders; no candidate is added or dropped.
func applyAdjustments(in fusedList, qc domain.QueryContext, policy domain.RankingPolicy) adjustedList {
	out := make(adjustedList, len(in))
	copy(out, in)

	for i := range out {
		factor := policy.ConfidenceFloor + policy.ConfidenceWeight*clamp01(out[i].ExtractionConfidence)
		score := out[i].FusedScore * factor
		for _, rule := range policy.Boosts {
			if rule.Matches(out[i], qc) {
				score += rule.Boost
			}
		}
		out[i].AdjustedScore = score
	}

	sortByAdjustedScore(out)
	return out
}

func sortByAdjustedScore(list []domain.Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].AdjustedScore != list[j].AdjustedScore {
			return list[i].AdjustedScore > list[j].AdjustedScore
		}
		if list[i].ExtractionConfidence != list[j].ExtractionConfidence {
			return list[i].ExtractionConfidence > list[j].ExtractionConfidence
		}
		return list[i].ID < list[j].ID
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
