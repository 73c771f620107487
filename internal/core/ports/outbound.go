package ports

import (
	"context"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// Embedder builds the dense query vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SearchIndex runs the two retrieval signals against the vector index.
// Both return candidates in rank order; rank fields are filled by the
// caller from list position.
type SearchIndex interface {
	SearchDense(ctx context.Context, queryVector []float32, limit int, filter domain.SearchFilter) ([]domain.Candidate, error)
	SearchSparse(ctx context.Context, queryText string, limit int, filter domain.SearchFilter) ([]domain.Candidate, error)
}

// QueryClassifier assigns a query type when no deterministic section
// reference is present.
type QueryClassifier interface {
	Classify(ctx context.Context, query string) (domain.QueryType, error)
}

// Reranker scores query/text pairs in one batched call.
type Reranker interface {
	Score(ctx context.Context, query string, texts []string) ([]float64, error)
}

// CitationRegistry is the authoritative store for citation existence.
// Lookups are exact; approximate matching is not part of this contract.
type CitationRegistry interface {
	SectionExists(ctx context.Context, actCode, sectionNumber string) (bool, error)
	PrecedentExists(ctx context.Context, caseCitation string) (bool, error)
}

// RelevanceJudge decides whether a verified candidate actually addresses
// the question.
type RelevanceJudge interface {
	Judge(ctx context.Context, query string, candidate domain.Candidate) (domain.RelevanceStatus, error)
}

// TransitionResolver maps a superseded-code section to its successors in
// the current code.
type TransitionResolver interface {
	Successors(ctx context.Context, actCode, sectionNumber string) ([]domain.SectionRef, error)
}

// ResponseCache is an optional side store for full response bundles.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*domain.ResponseBundle, bool, error)
	Set(ctx context.Context, key string, bundle *domain.ResponseBundle) error
}

// AuditTrail publishes verification outcomes; delivery is best-effort.
type AuditTrail interface {
	PublishVerification(ctx context.Context, event domain.AuditEvent) error
}

// AuditStore persists and reads back published audit events.
type AuditStore interface {
	InsertEvent(ctx context.Context, event domain.AuditEvent) error
	ListEvents(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditEvent, error)
}
