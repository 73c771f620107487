package domain

import "strings"

type QueryType string

const (
	QuerySectionLookup   QueryType = "section_lookup"
	QueryCriminalOffence QueryType = "criminal_offence"
	QueryCivilConceptual QueryType = "civil_conceptual"
	QueryProcedural      QueryType = "procedural"
	QueryOldStatute      QueryType = "old_statute"
	QueryDefault         QueryType = "default"
)

// ParseQueryType maps raw classifier output onto a known query type.
func ParseQueryType(s string) (QueryType, bool) {
	qt := QueryType(strings.ToLower(strings.TrimSpace(s)))
	switch qt {
	case QuerySectionLookup, QueryCriminalOffence, QueryCivilConceptual,
		QueryProcedural, QueryOldStatute, QueryDefault:
		return qt, true
	default:
		return "", false
	}
}

// QueryContext is built once per request and read-only afterwards.
type QueryContext struct {
	QueryText       string    `json:"query_text"`
	QueryType       QueryType `json:"query_type"`
	ActHint         string    `json:"act_hint,omitempty"`
	SectionHint     string    `json:"section_hint,omitempty"`
	EraHint         Era       `json:"era_hint,omitempty"`
	Role            string    `json:"role"`
	TopK            int       `json:"top_k"`
	DiversityFactor float64   `json:"diversity_factor"`
	ActFilter       string    `json:"act_filter,omitempty"`
	EraFilter       Era       `json:"era_filter,omitempty"`
}

// RetrievalRequest is the inbound request for the query service.
type RetrievalRequest struct {
	Query           string  `json:"query"`
	Role            string  `json:"role,omitempty"`
	TopK            int     `json:"top_k,omitempty"`
	DiversityFactor float64 `json:"diversity_factor,omitempty"`
	ActCode         string  `json:"act_code,omitempty"`
	Era             Era     `json:"era,omitempty"`
	BypassCache     bool    `json:"bypass_cache,omitempty"`
}
