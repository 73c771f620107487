package ports

import (
	"context"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// LegalQueryService is the inbound contract for the retrieval and
// verification pipeline.
type LegalQueryService interface {
	RetrieveAndVerify(ctx context.Context, req domain.RetrievalRequest) (*domain.ResponseBundle, error)
}

// SectionReader is the inbound read model for direct registry lookups.
type SectionReader interface {
	GetSection(ctx context.Context, actCode, sectionNumber string) (*domain.StatuteSection, error)
}
