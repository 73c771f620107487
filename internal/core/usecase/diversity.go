package usecase

import (
	"math"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type selectedList []domain.Candidate

// selectDiverse picks topK candidates by maximal marginal relevance with
// lambda = 1 - diversityFactor. A zero diversity factor short-circuits to
// the plain adjusted-score head so the selector is an exact identity there,
// not merely an approximate one.
func selectDiverse(in adjustedList, topK int, diversityFactor float64) selectedList {
	if topK <= 0 || topK > len(in) {
		topK = len(in)
	}

	if diversityFactor <= 0 {
		out := make(selectedList, topK)
		copy(out, in[:topK])
		return out
	}

	lambda := 1 - diversityFactor
	remaining := make([]domain.Candidate, len(in))
	copy(remaining, in)

	out := make(selectedList, 0, topK)
	for len(out) < topK && len(remaining) > 0 {
		bestIdx := 0
		bestScore := math.Inf(-1)
		for i, cand := range remaining {
			score := lambda * cand.AdjustedScore
			if len(out) > 0 {
				score -= (1 - lambda) * maxSimilarity(cand, out)
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		out = append(out, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out
}

func maxSimilarity(cand domain.Candidate, selected selectedList) float64 {
	maxSim := 0.0
	for _, sel := range selected {
		if sim := pairSimilarity(cand, sel); sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim
}

// pairSimilarity is a metadata proxy, not an embedding distance: units from
// the same act and source type crowd each other out, everything else is
// weakly similar.
func pairSimilarity(a, b domain.Candidate) float64 {
	if a.ActCode == b.ActCode && a.SourceType == b.SourceType {
		return 1.0
	}
	return 0.2
}
