package usecase

import (
	"context"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type embedFake struct {
	vector []float32
	err    error
}

func (f *embedFake) EmbedQuery(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.vector == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return f.vector, nil
}

type indexFake struct {
	dense        []domain.Candidate
	sparse       []domain.Candidate
	denseErr     error
	sparseErr    error
	denseCalls   int
	sparseCalls  int
	denseFilter  domain.SearchFilter
	sparseFilter domain.SearchFilter
	denseLimit   int
	sparseLimit  int
}

func (f *indexFake) SearchDense(_ context.Context, _ []float32, limit int, filter domain.SearchFilter) ([]domain.Candidate, error) {
	f.denseCalls++
	f.denseLimit = limit
	f.denseFilter = filter
	if f.denseErr != nil {
		return nil, f.denseErr
	}
	return f.dense, nil
}

func (f *indexFake) SearchSparse(_ context.Context, _ string, limit int, filter domain.SearchFilter) ([]domain.Candidate, error) {
	f.sparseCalls++
	f.sparseLimit = limit
	f.sparseFilter = filter
	if f.sparseErr != nil {
		return nil, f.sparseErr
	}
	return f.sparse, nil
}

type classifyFake struct {
	qt    domain.QueryType
	err   error
	calls int
}

func (f *classifyFake) Classify(context.Context, string) (domain.QueryType, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.qt, nil
}

type rerankFake struct {
	scores    []float64
	err       error
	calls     int
	lastTexts []string
}

func (f *rerankFake) Score(_ context.Context, _ string, texts []string) ([]float64, error) {
	f.calls++
	f.lastTexts = texts
	if f.err != nil {
		return nil, f.err
	}
	if f.scores != nil {
		return f.scores, nil
	}
	return make([]float64, len(texts)), nil
}

type registryFake struct {
	sections   map[string]bool
	precedents map[string]bool
	err        error
}

func (f *registryFake) SectionExists(_ context.Context, act, section string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.sections[act+"|"+section], nil
}

func (f *registryFake) PrecedentExists(_ context.Context, citation string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.precedents[citation], nil
}

type judgeFake struct {
	byID  map[string]domain.RelevanceStatus
	err   error
	delay time.Duration
}

func (f *judgeFake) Judge(ctx context.Context, _ string, cand domain.Candidate) (domain.RelevanceStatus, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return "", f.err
	}
	if status, ok := f.byID[cand.ID]; ok {
		return status, nil
	}
	return domain.RelevanceRelevant, nil
}

type transitionFake struct {
	successors map[string][]domain.SectionRef
	err        error
}

func (f *transitionFake) Successors(_ context.Context, act, section string) ([]domain.SectionRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.successors[act+"|"+section], nil
}

type cacheFake struct {
	store  map[string]*domain.ResponseBundle
	getErr error
	setErr error
	hits   int
	sets   int
}

func (f *cacheFake) Get(_ context.Context, key string) (*domain.ResponseBundle, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	bundle, ok := f.store[key]
	if !ok {
		return nil, false, nil
	}
	f.hits++
	// Copy like a codec-backed cache would; callers mutate their bundle.
	copied := *bundle
	return &copied, true, nil
}

func (f *cacheFake) Set(_ context.Context, key string, bundle *domain.ResponseBundle) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.store == nil {
		f.store = make(map[string]*domain.ResponseBundle)
	}
	f.store[key] = bundle
	f.sets++
	return nil
}

type auditFake struct {
	events []domain.AuditEvent
	err    error
}

func (f *auditFake) PublishVerification(_ context.Context, event domain.AuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func statuteCandidate(id, act, section string, confidence float64) domain.Candidate {
	return domain.Candidate{
		ID:                   id,
		Text:                 "text of " + id,
		SourceType:           domain.SourceStatuteSection,
		ActCode:              act,
		SectionNumber:        section,
		Era:                  domain.EraCurrentCode,
		ExtractionConfidence: confidence,
	}
}

func precedentCandidate(id, citation string, confidence float64) domain.Candidate {
	return domain.Candidate{
		ID:                   id,
		Text:                 "judgment text of " + id,
		SourceType:           domain.SourceJudgmentChunk,
		CaseCitation:         citation,
		Era:                  domain.EraGeneralStatute,
		ExtractionConfidence: confidence,
	}
}
