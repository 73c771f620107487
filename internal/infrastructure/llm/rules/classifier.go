// Package rules holds the deterministic classifier and relevance judge used
// when no LLM provider is configured. They trade nuance for predictability:
// the pipeline keeps working offline and in tests, and the verifier still
// fails closed on anything the keyword evidence cannot support.
package rules

import (
	"context"
	"strings"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

var (
	oldStatuteCues = []string{"penal code", "evidence act", "1860", "1872", "1973", "repealed", "old code", "old law", "erstwhile"}
	criminalCues   = []string{"murder", "theft", "robbery", "cheating", "dowry", "assault", "kidnapping", "culpable", "hurt", "punishment", "offence", "offense"}
	proceduralCues = []string{"fir", "bail", "arrest", "summons", "warrant", "chargesheet", "charge sheet", "appeal", "procedure", "limitation period"}
	civilCues      = []string{"contract", "property", "divorce", "maintenance", "tenancy", "landlord", "tenant", "deposit", "damages", "negligence", "partnership", "inheritance"}
)

// Classify walks the cue lists in fixed precedence: era cues first, then
// offence, procedure, civil concepts. The order matters for queries hitting
// several lists ("punishment under the old penal code" is an old_statute
// question, not a criminal_offence one).
func (Classifier) Classify(_ context.Context, query string) (domain.QueryType, error) {
	q := strings.ToLower(query)
	tokens := tokenSet(q)
	switch {
	case matchesAny(q, tokens, oldStatuteCues):
		return domain.QueryOldStatute, nil
	case matchesAny(q, tokens, criminalCues):
		return domain.QueryCriminalOffence, nil
	case matchesAny(q, tokens, proceduralCues):
		return domain.QueryProcedural, nil
	case matchesAny(q, tokens, civilCues):
		return domain.QueryCivilConceptual, nil
	default:
		return domain.QueryDefault, nil
	}
}

// matchesAny checks single-word cues against the token set and multi-word
// cues as substrings, so "fir" cannot fire inside "confirmation".
func matchesAny(query string, tokens map[string]struct{}, cues []string) bool {
	for _, cue := range cues {
		if strings.ContainsRune(cue, ' ') {
			if strings.Contains(query, cue) {
				return true
			}
			continue
		}
		if _, ok := tokens[cue]; ok {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{}, 16)
	for _, token := range splitAlphaNum(s) {
		out[token] = struct{}{}
	}
	return out
}

func splitAlphaNum(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		return !alnum
	})
}
