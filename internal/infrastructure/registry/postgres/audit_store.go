package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type AuditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) InsertEvent(ctx context.Context, event domain.AuditEvent) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO audit_events (
	id, request_id, query_type, candidate_id, source_type, act_code, section_number, case_citation, existence, relevance, retained, is_primary, checked_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO NOTHING
`,
		event.ID, event.RequestID, string(event.QueryType), event.CandidateID, string(event.SourceType),
		event.ActCode, event.SectionNumber, event.CaseCitation,
		string(event.Existence), string(event.Relevance), event.Retained, event.Primary, event.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *AuditStore) ListEvents(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, request_id, query_type, candidate_id, source_type, act_code, section_number, case_citation, existence, relevance, retained, is_primary, checked_at
FROM audit_events
WHERE checked_at >= $1 AND checked_at < $2
ORDER BY checked_at ASC
LIMIT $3
`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		var queryType, sourceType, existence, relevance string
		var actCode, sectionNumber, caseCitation sql.NullString
		err := rows.Scan(
			&event.ID, &event.RequestID, &queryType, &event.CandidateID, &sourceType,
			&actCode, &sectionNumber, &caseCitation,
			&existence, &relevance, &event.Retained, &event.Primary, &event.CheckedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.QueryType = domain.QueryType(queryType)
		event.SourceType = domain.SourceType(sourceType)
		event.ActCode = actCode.String
		event.SectionNumber = sectionNumber.String
		event.CaseCitation = caseCitation.String
		event.Existence = domain.ExistenceStatus(existence)
		event.Relevance = domain.RelevanceStatus(relevance)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
