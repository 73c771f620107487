package usecase

import (
	"context"
	"sort"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
)

type rankedList []domain.Candidate

// rerankCandidates scores the selected candidates against the query in one
// batched cross-encoder call and reorders by that score. Any failure keeps
// the selection order and reports degraded=true: ranking quality may drop,
// availability may not.
func rerankCandidates(ctx context.Context, reranker ports.Reranker, query string, in selectedList) (rankedList, bool) {
	out := make(rankedList, len(in))
	copy(out, in)
	if len(out) == 0 {
		return out, false
	}
	if reranker == nil {
		return out, true
	}

	texts := make([]string, len(out))
	for i := range out {
		texts[i] = out[i].Text
	}

	scores, err := reranker.Score(ctx, query, texts)
	if err != nil || len(scores) != len(out) {
		return out, true
	}

	for i := range out {
		out[i].RerankScore = scores[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RerankScore != out[j].RerankScore {
			return out[i].RerankScore > out[j].RerankScore
		}
		if out[i].AdjustedScore != out[j].AdjustedScore {
			return out[i].AdjustedScore > out[j].AdjustedScore
		}
		return out[i].ID < out[j].ID
	})
	return out, false
}
