package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
)

// sectionRefPattern matches an act abbreviation followed by a 1-3 digit
// section token with an optional trailing letter ("BNS 103", "ipc 420",
// "CrPC 154A"). The word boundaries keep it from matching inside a
// four-digit year: no 1-3 digit prefix of "2023" ends on a boundary.
var sectionRefPattern = regexp.MustCompile(`(?i)\b(BNS|BNSS|BSA|IPC|CRPC|IEA)[\s.:-]*(\d{1,3}[A-Z]?)\b`)

// actEras maps the recognized act abbreviations to their era.
var actEras = map[string]domain.Era{
	"BNS":  domain.EraCurrentCode,
	"BNSS": domain.EraCurrentCode,
	"BSA":  domain.EraCurrentCode,
	"IPC":  domain.EraSupersededCode,
	"CRPC": domain.EraSupersededCode,
	"IEA":  domain.EraSupersededCode,
}

type contextBuilder struct {
	classifier ports.QueryClassifier
}

// build produces the immutable query context for one request. The
// classifier is consulted only when no deterministic section reference is
// present; classifier failure degrades to the default type and never fails
// the request.
func (b contextBuilder) build(ctx context.Context, req domain.RetrievalRequest) (domain.QueryContext, string, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return domain.QueryContext{}, "", domain.WrapError(domain.ErrInvalidInput, "build query context", fmt.Errorf("empty query"))
	}

	qc := domain.QueryContext{
		QueryText:       query,
		Role:            req.Role,
		TopK:            req.TopK,
		DiversityFactor: req.DiversityFactor,
		ActFilter:       req.ActCode,
		EraFilter:       req.Era,
	}
	if qc.Role == "" {
		qc.Role = "public"
	}
	if qc.TopK <= 0 {
		qc.TopK = 5
	}
	if qc.DiversityFactor < 0 {
		qc.DiversityFactor = 0
	}
	if qc.DiversityFactor > 1 {
		qc.DiversityFactor = 1
	}

	if act, section, ok := detectSectionReference(query); ok {
		qc.QueryType = domain.QuerySectionLookup
		qc.ActHint = act
		qc.SectionHint = section
		qc.EraHint = actEras[act]
		return qc, "", nil
	}

	if b.classifier == nil {
		qc.QueryType = domain.QueryDefault
		return qc, domain.DegradedClassifier, nil
	}
	classified, err := b.classifier.Classify(ctx, query)
	if err != nil {
		qc.QueryType = domain.QueryDefault
		return qc, domain.DegradedClassifier, nil
	}
	queryType, ok := domain.ParseQueryType(string(classified))
	if !ok {
		qc.QueryType = domain.QueryDefault
		return qc, domain.DegradedClassifier, nil
	}
	qc.QueryType = queryType
	qc.EraHint = eraHintFor(queryType)
	return qc, "", nil
}

func detectSectionReference(query string) (act, section string, ok bool) {
	m := sectionRefPattern.FindStringSubmatch(query)
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(m[1]), strings.ToUpper(m[2]), true
}

func eraHintFor(qt domain.QueryType) domain.Era {
	switch qt {
	case domain.QueryOldStatute:
		return domain.EraSupersededCode
	case domain.QueryCriminalOffence, domain.QueryProcedural:
		return domain.EraCurrentCode
	default:
		return ""
	}
}
