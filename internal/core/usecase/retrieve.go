package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
)

type RetrievalConfig struct {
	Policy        domain.RankingPolicy
	RerankTimeout time.Duration
	VerifyTimeout time.Duration
	VerifyWorkers int
	AuditTimeout  time.Duration
}

type RetrievalDeps struct {
	Embedder    ports.Embedder
	Index       ports.SearchIndex
	Classifier  ports.QueryClassifier
	Reranker    ports.Reranker
	Registry    ports.CitationRegistry
	Judge       ports.RelevanceJudge
	Transitions ports.TransitionResolver
	Cache       ports.ResponseCache
	Audit       ports.AuditTrail
	Logger      *slog.Logger
}

// RetrievalUseCase drives the full pipeline: context, dual retrieval,
// fusion, adjustment, diversity, rerank, verification. Stages communicate
// through typed lists, so they cannot be composed out of order.
type RetrievalUseCase struct {
	deps   RetrievalDeps
	cfg    RetrievalConfig
	logger *slog.Logger
}

func NewRetrievalUseCase(deps RetrievalDeps, cfg RetrievalConfig) *RetrievalUseCase {
	cfg.Policy = cfg.Policy.Normalize()
	if cfg.RerankTimeout <= 0 {
		cfg.RerankTimeout = 10 * time.Second
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = 8 * time.Second
	}
	if cfg.VerifyWorkers <= 0 {
		cfg.VerifyWorkers = 4
	}
	if cfg.AuditTimeout <= 0 {
		cfg.AuditTimeout = 2 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RetrievalUseCase{deps: deps, cfg: cfg, logger: logger}
}

func (uc *RetrievalUseCase) RetrieveAndVerify(ctx context.Context, req domain.RetrievalRequest) (*domain.ResponseBundle, error) {
	clock := newStageClock()

	qc, contextFlag, err := contextBuilder{classifier: uc.deps.Classifier}.build(ctx, req)
	if err != nil {
		return nil, err
	}
	clock.mark("context")

	cacheKey := responseCacheKey(qc)
	if uc.deps.Cache != nil && !req.BypassCache {
		cached, ok, cacheErr := uc.deps.Cache.Get(ctx, cacheKey)
		if cacheErr != nil {
			uc.logger.Warn("response cache read failed", "error", cacheErr)
		} else if ok {
			// The stored stage timings belong to the run that produced the
			// bundle, not to this request.
			cached.RequestID = uuid.NewString()
			cached.StageMS = nil
			return cached, nil
		}
	}

	degraded := make([]string, 0, 4)
	if contextFlag != "" {
		degraded = append(degraded, contextFlag)
	}

	dense, sparse, retrievalFlags, err := uc.retrieveSignals(ctx, qc)
	if err != nil {
		return nil, err
	}
	degraded = append(degraded, retrievalFlags...)
	clock.mark("retrieve")

	fused := fuseWeightedRRF(dense, sparse, uc.cfg.Policy.WeightsFor(qc.QueryType), uc.cfg.Policy.RRFK)
	clock.mark("fuse")

	adjusted := applyAdjustments(fused, qc, uc.cfg.Policy)
	clock.mark("adjust")

	selected := selectDiverse(adjusted, qc.TopK, qc.DiversityFactor)
	clock.mark("diversify")

	rerankCtx, cancelRerank := context.WithTimeout(ctx, uc.cfg.RerankTimeout)
	ranked, rerankDegraded := rerankCandidates(rerankCtx, uc.deps.Reranker, qc.QueryText, selected)
	cancelRerank()
	if rerankDegraded {
		degraded = append(degraded, domain.DegradedReranker)
	}
	clock.mark("rerank")

	v := verifier{
		registry:    uc.deps.Registry,
		judge:       uc.deps.Judge,
		transitions: uc.deps.Transitions,
		timeout:     uc.cfg.VerifyTimeout,
		workers:     uc.cfg.VerifyWorkers,
	}
	records, verifierDown := v.verifyAll(ctx, qc, ranked)
	if verifierDown {
		degraded = append(degraded, domain.DegradedVerification)
	}
	clock.mark("verify")

	citations, status := assembleCitations(ranked, records)
	if citations == nil {
		citations = []domain.Citation{}
	}
	bundle := &domain.ResponseBundle{
		RequestID: uuid.NewString(),
		Query:     qc.QueryText,
		QueryType: qc.QueryType,
		Status:    status,
		Citations: citations,
		Degraded:  degraded,
		StageMS:   clock.snapshot(),
	}
	if status == domain.StatusUnverified {
		bundle.Message = domain.RefusalMessage
	}

	uc.publishAudit(ctx, bundle.RequestID, qc, ranked, records)

	if uc.deps.Cache != nil && !req.BypassCache && len(degraded) == 0 {
		if err := uc.deps.Cache.Set(ctx, cacheKey, bundle); err != nil {
			uc.logger.Warn("response cache write failed", "error", err)
		}
	}

	uc.logger.Info("legal query served",
		"request_id", bundle.RequestID,
		"query_type", string(qc.QueryType),
		"status", string(bundle.Status),
		"citations", len(bundle.Citations),
		"degraded", strings.Join(degraded, ","),
	)
	return bundle, nil
}

type signalResult struct {
	candidates []domain.Candidate
	err        error
}

// retrieveSignals runs the dense and sparse searches concurrently with an
// identical filter. One failed signal degrades; both failing is the only
// fatal outcome of the pipeline.
func (uc *RetrievalUseCase) retrieveSignals(ctx context.Context, qc domain.QueryContext) (dense, sparse []domain.Candidate, flags []string, err error) {
	poolSize := qc.TopK * uc.cfg.Policy.PoolMultiplier
	if poolSize < qc.TopK {
		poolSize = qc.TopK
	}
	filter := domain.SearchFilter{
		Role:    qc.Role,
		ActCode: qc.ActFilter,
		Era:     qc.EraFilter,
		// Drafting templates are indexed for other consumers and are
		// never citable authority.
		ExcludeSourceTypes: []domain.SourceType{domain.SourceTemplate},
	}

	var wg sync.WaitGroup
	var denseRes, sparseRes signalResult

	wg.Add(2)
	go func() {
		defer wg.Done()
		vector, embedErr := uc.deps.Embedder.EmbedQuery(ctx, qc.QueryText)
		if embedErr != nil {
			denseRes.err = fmt.Errorf("embed query: %w", embedErr)
			return
		}
		denseRes.candidates, denseRes.err = uc.deps.Index.SearchDense(ctx, vector, poolSize, filter)
	}()
	go func() {
		defer wg.Done()
		sparseRes.candidates, sparseRes.err = uc.deps.Index.SearchSparse(ctx, qc.QueryText, poolSize, filter)
	}()
	wg.Wait()

	if denseRes.err != nil && sparseRes.err != nil {
		return nil, nil, nil, domain.WrapError(domain.ErrRetrievalUnavailable, "dual retrieval",
			fmt.Errorf("dense: %v; sparse: %v", denseRes.err, sparseRes.err))
	}
	if denseRes.err != nil {
		uc.logger.Warn("dense retrieval failed", "error", denseRes.err)
		flags = append(flags, domain.DegradedDenseRetriever)
	}
	if sparseRes.err != nil {
		uc.logger.Warn("sparse retrieval failed", "error", sparseRes.err)
		flags = append(flags, domain.DegradedSparseRetriever)
	}
	return denseRes.candidates, sparseRes.candidates, flags, nil
}

// publishAudit emits one event per verified candidate, retained or not.
// Delivery is best-effort and never fails the request.
func (uc *RetrievalUseCase) publishAudit(ctx context.Context, requestID string, qc domain.QueryContext, ranked rankedList, records []domain.VerificationRecord) {
	if uc.deps.Audit == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.AuditTimeout)
	defer cancel()

	for i, cand := range ranked {
		record := records[i]
		event := domain.AuditEvent{
			ID:            uuid.NewString(),
			RequestID:     requestID,
			QueryType:     qc.QueryType,
			CandidateID:   cand.ID,
			SourceType:    cand.SourceType,
			ActCode:       cand.ActCode,
			SectionNumber: cand.SectionNumber,
			CaseCitation:  cand.CaseCitation,
			Existence:     record.Existence,
			Relevance:     record.Relevance,
			Retained:      record.Retained(),
			Primary:       record.PrimaryAuthority(),
			CheckedAt:     record.CheckedAt,
		}
		if err := uc.deps.Audit.PublishVerification(auditCtx, event); err != nil {
			uc.logger.Warn("audit publish failed", "candidate_id", cand.ID, "error", err)
		}
	}
}

type stageClock struct {
	last  time.Time
	spans map[string]int64
}

func newStageClock() *stageClock {
	return &stageClock{last: time.Now(), spans: make(map[string]int64, 8)}
}

func (c *stageClock) mark(stage string) {
	now := time.Now()
	c.spans[stage] = now.Sub(c.last).Milliseconds()
	c.last = now
}

func (c *stageClock) snapshot() map[string]int64 { return c.spans }

// responseCacheKey hashes everything that can change the response: the
// caller's role, the normalized query, and the explicit knobs.
func responseCacheKey(qc domain.QueryContext) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%.3f|%s|%s",
		qc.Role, strings.ToLower(qc.QueryText), qc.TopK, qc.DiversityFactor, qc.ActFilter, qc.EraFilter)
	return "neethi:response:" + hex.EncodeToString(h.Sum(nil))
}
