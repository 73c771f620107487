package usecase

import (
	"sort"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// fusedList is the output of fusion and the only input the adjustment
// stage accepts. The distinct stage types keep the pipeline order fixed at
// compile time.
type fusedList []domain.Candidate

// fuseWeightedRRF merges the dense and sparse result lists with weighted
// reciprocal rank fusion. Ranks are 1-based list positions; a candidate
// absent from one list contributes nothing for that signal. The function is
// pure: the same inputs and weights always produce the same order.
func fuseWeightedRRF(dense, sparse []domain.Candidate, weights domain.FusionWeights, rrfK int) fusedList {
	if rrfK <= 0 {
		rrfK = 60
	}

	acc := make(map[string]domain.Candidate, len(dense)+len(sparse))
	order := make([]string, 0, len(dense)+len(sparse))

	for i, c := range dense {
		if _, ok := acc[c.ID]; ok {
			continue
		}
		c.DenseRank = i + 1
		acc[c.ID] = c
		order = append(order, c.ID)
	}
	for i, c := range sparse {
		merged, ok := acc[c.ID]
		if !ok {
			merged = c
			order = append(order, c.ID)
		} else if merged.SparseRank != 0 {
			continue
		}
		// Same corpus unit from both signals: keep one candidate with
		// both ranks filled.
		merged.SparseRank = i + 1
		acc[merged.ID] = merged
	}

	out := make(fusedList, 0, len(acc))
	for _, id := range order {
		c := acc[id]
		c.FusedScore = rrfContribution(weights.Dense, c.DenseRank, rrfK) +
			rrfContribution(weights.Sparse, c.SparseRank, rrfK)
		out = append(out, c)
	}

	sortByFusedScore(out)
	return out
}

func rrfContribution(weight float64, rank, rrfK int) float64 {
	if rank <= 0 {
		return 0
	}
	return weight / float64(rrfK+rank)
}

func sortByFusedScore(list []domain.Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].FusedScore != list[j].FusedScore {
			return list[i].FusedScore > list[j].FusedScore
		}
		if list[i].ExtractionConfidence != list[j].ExtractionConfidence {
			return list[i].ExtractionConfidence > list[j].ExtractionConfidence
		}
		return list[i].ID < list[j].ID
	})
}
