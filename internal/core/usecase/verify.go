package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
)

type verifier struct {
	registry    ports.CitationRegistry
	judge       ports.RelevanceJudge
	transitions ports.TransitionResolver
	timeout     time.Duration
	workers     int
}

type verifyOutcome struct {
	record   domain.VerificationRecord
	infraErr bool
}

// verifyAll runs the existence and relevance checks for every candidate
// with bounded parallelism. Every incomplete check fails closed to
// NOT_FOUND. The second return value is true when the verification backend
// looks entirely unreachable, which the caller must surface rather than
// silently skip.
func (v verifier) verifyAll(ctx context.Context, qc domain.QueryContext, in rankedList) ([]domain.VerificationRecord, bool) {
	records := make([]domain.VerificationRecord, len(in))
	if len(in) == 0 {
		return records, false
	}
	if v.registry == nil {
		now := time.Now().UTC()
		for i, c := range in {
			records[i] = domain.VerificationRecord{
				CandidateID: c.ID,
				Existence:   domain.ExistenceNotFound,
				Detail:      "citation registry not configured",
				CheckedAt:   now,
			}
		}
		return records, true
	}

	workers := v.workers
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)
	outcomes := make([]verifyOutcome, len(in))

	var wg sync.WaitGroup
	for i := range in {
		wg.Add(1)
		go func(idx int, cand domain.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[idx] = v.verifyOne(ctx, qc, cand)
		}(i, in[i])
	}
	wg.Wait()

	infraFailures := 0
	for i := range outcomes {
		records[i] = outcomes[i].record
		if outcomes[i].infraErr {
			infraFailures++
		}
	}
	return records, infraFailures == len(in)
}

func (v verifier) verifyOne(ctx context.Context, qc domain.QueryContext, cand domain.Candidate) verifyOutcome {
	record := domain.VerificationRecord{
		CandidateID: cand.ID,
		Existence:   domain.ExistencePending,
	}

	checkCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	exists, detail, infraErr := v.checkExistence(checkCtx, cand)
	record.CheckedAt = time.Now().UTC()
	if !exists {
		record.Existence = domain.ExistenceNotFound
		record.Detail = detail
		return verifyOutcome{record: record, infraErr: infraErr}
	}
	record.Existence = domain.ExistenceVerified

	relevance, err := v.judgeRelevance(checkCtx, qc.QueryText, cand)
	if err != nil {
		record.Existence = domain.ExistenceNotFound
		record.Detail = fmt.Sprintf("relevance check incomplete: %v", err)
		return verifyOutcome{record: record, infraErr: true}
	}
	record.Relevance = relevance

	if record.Retained() && cand.Era == domain.EraSupersededCode && v.transitions != nil {
		// Successor annotation is informative only and never gates.
		if successors, err := v.transitions.Successors(checkCtx, cand.ActCode, cand.SectionNumber); err == nil {
			record.Successors = successors
		}
	}
	return verifyOutcome{record: record}
}

// checkExistence resolves the candidate's citation against the registry by
// exact identifiers. Similarity of any kind is out of bounds here.
func (v verifier) checkExistence(ctx context.Context, cand domain.Candidate) (exists bool, detail string, infraErr bool) {
	switch {
	case cand.IsStatutory():
		act := strings.TrimSpace(cand.ActCode)
		section := strings.TrimSpace(cand.SectionNumber)
		if act == "" || section == "" {
			return false, "candidate carries no act/section reference", false
		}
		ok, err := v.registry.SectionExists(ctx, act, section)
		if err != nil {
			return false, fmt.Sprintf("existence check failed: %v", err), true
		}
		if !ok {
			return false, fmt.Sprintf("no registry entry for %s s.%s", act, section), false
		}
		return true, "", false
	case cand.IsPrecedent():
		citation := strings.TrimSpace(cand.CaseCitation)
		if citation == "" {
			return false, "candidate carries no case citation", false
		}
		ok, err := v.registry.PrecedentExists(ctx, citation)
		if err != nil {
			return false, fmt.Sprintf("existence check failed: %v", err), true
		}
		if !ok {
			return false, fmt.Sprintf("no registry entry for %q", citation), false
		}
		return true, "", false
	default:
		return false, fmt.Sprintf("source type %s cannot be cited as authority", cand.SourceType), false
	}
}

func (v verifier) judgeRelevance(ctx context.Context, query string, cand domain.Candidate) (domain.RelevanceStatus, error) {
	if v.judge == nil {
		return "", fmt.Errorf("relevance judge not configured")
	}
	return v.judge.Judge(ctx, query, cand)
}

// assembleCitations applies the outcome gates and derives the aggregate
// status. NOT_FOUND and NOT_APPLICABLE candidates are removed; TANGENTIAL
// ones survive as secondary context only. Without a single RELEVANT
// citation the caller must answer with the refusal message and no
// retrieved text.
func assembleCitations(in rankedList, records []domain.VerificationRecord) ([]domain.Citation, domain.ResponseStatus) {
	citations := make([]domain.Citation, 0, len(in))
	status := domain.StatusUnverified
	for i, cand := range in {
		record := records[i]
		if !record.Retained() {
			continue
		}
		primary := record.PrimaryAuthority()
		citations = append(citations, domain.Citation{
			Candidate:    cand,
			Verification: record,
			Primary:      primary,
		})
		if primary && cand.IsStatutory() {
			status = domain.StatusVerified
		}
		if primary && cand.IsPrecedent() && status != domain.StatusVerified {
			status = domain.StatusPrecedentOnly
		}
	}
	if status == domain.StatusUnverified {
		return nil, status
	}
	return citations, status
}
