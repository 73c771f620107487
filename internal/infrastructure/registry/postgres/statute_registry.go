package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// StatuteRegistry answers citation existence with exact primary-key lookups.
// There is deliberately no LIKE or trigram path here: a citation the
// registry does not hold verbatim does not exist.
type StatuteRegistry struct {
	db *sql.DB
}

func NewStatuteRegistry(db *sql.DB) *StatuteRegistry {
	return &StatuteRegistry{db: db}
}

func (r *StatuteRegistry) SectionExists(ctx context.Context, actCode, sectionNumber string) (bool, error) {
	act := canonicalActCode(actCode)
	section := canonicalSectionNumber(sectionNumber)
	if act == "" || section == "" {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM statute_sections WHERE act_code = $1 AND section_number = $2
)
`, act, section).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("section exists lookup: %w", err)
	}
	return exists, nil
}

func (r *StatuteRegistry) PrecedentExists(ctx context.Context, caseCitation string) (bool, error) {
	citation := strings.TrimSpace(caseCitation)
	if citation == "" {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM precedents WHERE case_citation = $1
)
`, citation).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("precedent exists lookup: %w", err)
	}
	return exists, nil
}

func (r *StatuteRegistry) GetSection(ctx context.Context, actCode, sectionNumber string) (*domain.StatuteSection, error) {
	act := canonicalActCode(actCode)
	section := canonicalSectionNumber(sectionNumber)

	row := r.db.QueryRowContext(ctx, `
SELECT act_code, section_number, title, section_text, era, is_offence, updated_at
FROM statute_sections
WHERE act_code = $1 AND section_number = $2
`, act, section)

	var out domain.StatuteSection
	var era string
	err := row.Scan(&out.ActCode, &out.SectionNumber, &out.Title, &out.Text, &era, &out.IsOffence, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCitationNotFound, "get section",
				fmt.Errorf("%s %s not in registry", act, section))
		}
		return nil, fmt.Errorf("scan statute section: %w", err)
	}
	out.Era = domain.Era(era)
	return &out, nil
}

// canonicalActCode upper-cases and trims; the registry stores act codes in
// canonical uppercase form.
func canonicalActCode(actCode string) string {
	return strings.ToUpper(strings.TrimSpace(actCode))
}

func canonicalSectionNumber(sectionNumber string) string {
	return strings.ToUpper(strings.TrimSpace(sectionNumber))
}
