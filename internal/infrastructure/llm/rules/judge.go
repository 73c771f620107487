package rules

import (
	"context"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// Judge grades relevance by content-token overlap between the question and
// the source. The thresholds come from the ranking policy so operators tune
// one file for both the rules judge and any downstream scoring.
type Judge struct {
	thresholds domain.RelevanceThresholds
}

func NewJudge(thresholds domain.RelevanceThresholds) *Judge {
	if thresholds.Relevant <= 0 {
		thresholds.Relevant = 0.45
	}
	if thresholds.Tangential <= 0 {
		thresholds.Tangential = 0.20
	}
	return &Judge{thresholds: thresholds}
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "be": {}, "can": {}, "do": {},
	"does": {}, "for": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "under": {},
	"what": {}, "when": {}, "which": {}, "who": {}, "will": {}, "with": {},
}

func (j *Judge) Judge(_ context.Context, query string, candidate domain.Candidate) (domain.RelevanceStatus, error) {
	queryTokens := contentTokens(query)
	if len(queryTokens) == 0 {
		return domain.RelevanceNotApplicable, nil
	}

	sourceTokens := tokenSet(candidate.Text)
	for _, extra := range []string{candidate.ActCode, candidate.SectionNumber, candidate.CaseCitation} {
		for _, token := range splitAlphaNum(extra) {
			sourceTokens[token] = struct{}{}
		}
	}

	matched := 0
	for token := range queryTokens {
		if _, ok := sourceTokens[token]; ok {
			matched++
		}
	}
	overlap := float64(matched) / float64(len(queryTokens))

	switch {
	case overlap >= j.thresholds.Relevant:
		return domain.RelevanceRelevant, nil
	case overlap >= j.thresholds.Tangential:
		return domain.RelevanceTangential, nil
	default:
		return domain.RelevanceNotApplicable, nil
	}
}

func contentTokens(s string) map[string]struct{} {
	out := make(map[string]struct{}, 16)
	for _, token := range splitAlphaNum(s) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		out[token] = struct{}{}
	}
	return out
}
