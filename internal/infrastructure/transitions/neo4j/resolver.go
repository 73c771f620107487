// Package neo4j resolves superseded-code sections to their successors in
// the current codes (IPC 302 -> BNS 103). The graph is advisory: lookups
// annotate verified citations and never gate verification.
package neo4j

import (
	"context"
	"fmt"
	"strings"

	neo "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type Resolver struct {
	driver   neo.DriverWithContext
	database string
}

func NewResolver(uri, username, password, database string) (*Resolver, error) {
	driver, err := neo.NewDriverWithContext(uri, neo.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Resolver{driver: driver, database: database}, nil
}

func (r *Resolver) VerifyConnectivity(ctx context.Context) error {
	return r.driver.VerifyConnectivity(ctx)
}

func (r *Resolver) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

const successorsQuery = `
MATCH (old:Section {act_code: $act_code, section_number: $section_number})-[:SUPERSEDED_BY]->(new:Section)
RETURN new.act_code AS act_code, new.section_number AS section_number
ORDER BY act_code, section_number
`

func (r *Resolver) Successors(ctx context.Context, actCode, sectionNumber string) ([]domain.SectionRef, error) {
	session := r.driver.NewSession(ctx, neo.SessionConfig{
		AccessMode:   neo.AccessModeRead,
		DatabaseName: r.database,
	})
	defer session.Close(ctx)

	refs, err := neo.ExecuteRead(ctx, session, func(tx neo.ManagedTransaction) ([]domain.SectionRef, error) {
		result, err := tx.Run(ctx, successorsQuery, map[string]any{
			"act_code":       strings.ToUpper(strings.TrimSpace(actCode)),
			"section_number": strings.ToUpper(strings.TrimSpace(sectionNumber)),
		})
		if err != nil {
			return nil, err
		}

		var out []domain.SectionRef
		for result.Next(ctx) {
			record := result.Record()
			var ref domain.SectionRef
			if v, ok := record.Get("act_code"); ok {
				ref.ActCode, _ = v.(string)
			}
			if v, ok := record.Get("section_number"); ok {
				ref.SectionNumber, _ = v.(string)
			}
			if ref.ActCode != "" && ref.SectionNumber != "" {
				out = append(out, ref)
			}
		}
		return out, result.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("successors lookup: %w", err)
	}
	return refs, nil
}
