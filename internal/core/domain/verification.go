package domain

import (
	"strings"
	"time"
)

type ExistenceStatus string

const (
	ExistencePending  ExistenceStatus = "PENDING"
	ExistenceVerified ExistenceStatus = "VERIFIED"
	ExistenceNotFound ExistenceStatus = "NOT_FOUND"
)

type RelevanceStatus string

const (
	RelevanceUnchecked     RelevanceStatus = ""
	RelevanceRelevant      RelevanceStatus = "RELEVANT"
	RelevanceTangential    RelevanceStatus = "TANGENTIAL"
	RelevanceNotApplicable RelevanceStatus = "NOT_APPLICABLE"
)

// ParseRelevanceStatus maps raw judge output onto a known relevance verdict.
func ParseRelevanceStatus(s string) (RelevanceStatus, bool) {
	rs := RelevanceStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch rs {
	case RelevanceRelevant, RelevanceTangential, RelevanceNotApplicable:
		return rs, true
	default:
		return "", false
	}
}

type ResponseStatus string

const (
	StatusVerified      ResponseStatus = "VERIFIED"
	StatusPrecedentOnly ResponseStatus = "PRECEDENT_ONLY"
	StatusUnverified    ResponseStatus = "UNVERIFIED"
)

// RefusalMessage is the only text an UNVERIFIED response may carry.
const RefusalMessage = "No verifiable legal authority could be confirmed for this question. " +
	"Consult the bare text of the relevant acts or rephrase the question."

const (
	DegradedDenseRetriever  = "dense_retriever_unavailable"
	DegradedSparseRetriever = "sparse_retriever_unavailable"
	DegradedClassifier      = "classifier_fallback"
	DegradedReranker        = "reranker_unavailable"
	DegradedVerification    = "verification_unavailable"
)

type SectionRef struct {
	ActCode       string `json:"act_code"`
	SectionNumber string `json:"section_number"`
}

// VerificationRecord is the audited outcome of the per-candidate checks.
// Existence must come from an exact registry lookup, never from retrieval
// similarity; any failure along the way lands as NOT_FOUND.
type VerificationRecord struct {
	CandidateID string          `json:"candidate_id"`
	Existence   ExistenceStatus `json:"existence"`
	Relevance   RelevanceStatus `json:"relevance"`
	Detail      string          `json:"detail,omitempty"`
	Successors  []SectionRef    `json:"successors,omitempty"`
	CheckedAt   time.Time       `json:"checked_at"`
}

// Retained reports whether the candidate may appear in the response at all.
func (r VerificationRecord) Retained() bool {
	if r.Existence != ExistenceVerified {
		return false
	}
	return r.Relevance == RelevanceRelevant || r.Relevance == RelevanceTangential
}

// PrimaryAuthority reports whether the candidate may be cited as authority
// rather than shown as secondary context.
func (r VerificationRecord) PrimaryAuthority() bool {
	return r.Existence == ExistenceVerified && r.Relevance == RelevanceRelevant
}

type Citation struct {
	Candidate    Candidate          `json:"candidate"`
	Verification VerificationRecord `json:"verification"`
	Primary      bool               `json:"primary"`
}

type ResponseBundle struct {
	RequestID string           `json:"request_id"`
	Query     string           `json:"query"`
	QueryType QueryType        `json:"query_type"`
	Status    ResponseStatus   `json:"status"`
	Message   string           `json:"message,omitempty"`
	Citations []Citation       `json:"citations"`
	Degraded  []string         `json:"degraded,omitempty"`
	StageMS   map[string]int64 `json:"stage_ms,omitempty"`
}
