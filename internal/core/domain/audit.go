package domain

import "time"

// AuditEvent records one per-candidate verification outcome for the audit
// trail. Events are published fire-and-forget and persisted by the worker.
type AuditEvent struct {
	ID            string          `json:"id"`
	RequestID     string          `json:"request_id"`
	QueryType     QueryType       `json:"query_type"`
	CandidateID   string          `json:"candidate_id"`
	SourceType    SourceType      `json:"source_type"`
	ActCode       string          `json:"act_code,omitempty"`
	SectionNumber string          `json:"section_number,omitempty"`
	CaseCitation  string          `json:"case_citation,omitempty"`
	Existence     ExistenceStatus `json:"existence"`
	Relevance     RelevanceStatus `json:"relevance"`
	Retained      bool            `json:"retained"`
	Primary       bool            `json:"primary"`
	CheckedAt     time.Time       `json:"checked_at"`
}
