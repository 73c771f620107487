package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/config"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/usecase"
	auditnats "github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/audit/nats"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/cache/redis"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/index/qdrant"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/llm/ollama"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/llm/openaicompat"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/llm/rules"
	registrypg "github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/registry/postgres"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/rerank/crossencoder"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/resilience"
	transitionsneo4j "github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/transitions/neo4j"
	"github.com/SachinASIET26/Neethi-sub000/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.HTTPServerMetrics

	Service  ports.LegalQueryService
	Sections ports.SectionReader

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	policy, err := config.LoadRankingPolicy(cfg.RankingPolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load ranking policy: %w", err)
	}

	db, err := registrypg.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := registrypg.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	registry := registrypg.NewStatuteRegistry(db)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	serverMetrics := metrics.NewHTTPServerMetrics("api")

	index := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)

	var ollamaClient *ollama.Client
	if cfg.OllamaURL != "" {
		ollamaClient = ollama.NewWithOptions(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, ollama.Options{
			RequestTimeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
			GenerateRPS:    cfg.LLMGenerateRPS,
			GenerateBurst:  cfg.LLMGenerateBurst,
			Executor:       executor,
		})
	}

	var embedder ports.Embedder
	if ollamaClient != nil {
		embedder = ollama.NewEmbedder(ollamaClient)
	} else {
		logger.Warn("no embedding backend configured, dense retrieval will degrade")
		embedder = unavailableEmbedder{}
	}

	classifier, judge, providerName := resolveLLMProvider(cfg, policy, ollamaClient, executor)
	logger.Info("llm provider selected", "provider", providerName)

	var reranker ports.Reranker
	if cfg.RerankerURL != "" {
		reranker = crossencoder.New(cfg.RerankerURL, cfg.RerankerModel, time.Duration(cfg.RerankTimeoutSeconds)*time.Second)
	} else {
		logger.Warn("no reranker configured, responses will keep adjusted order")
	}

	var transitions ports.TransitionResolver
	var resolver *transitionsneo4j.Resolver
	if cfg.Neo4jURI != "" {
		resolver, err = transitionsneo4j.NewResolver(cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init transition resolver: %w", err)
		}
		if err := resolver.VerifyConnectivity(ctx); err != nil {
			logger.Warn("transition graph unreachable at startup", "error", err)
		}
		transitions = resolver
	}

	var responseCache ports.ResponseCache
	var redisCache *redis.Cache
	if cfg.RedisAddr != "" {
		redisCache = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		responseCache = &instrumentedCache{inner: redisCache, metrics: serverMetrics}
	}

	bus, err := auditnats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, auditnats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit bus: %w", err)
	}

	service := usecase.NewRetrievalUseCase(usecase.RetrievalDeps{
		Embedder:    embedder,
		Index:       index,
		Classifier:  classifier,
		Reranker:    reranker,
		Registry:    registry,
		Judge:       judge,
		Transitions: transitions,
		Cache:       responseCache,
		Audit:       bus,
		Logger:      logger,
	}, usecase.RetrievalConfig{
		Policy:        policy,
		RerankTimeout: time.Duration(cfg.RerankTimeoutSeconds) * time.Second,
		VerifyTimeout: time.Duration(cfg.VerifyTimeoutSeconds) * time.Second,
		VerifyWorkers: cfg.VerifyWorkers,
		AuditTimeout:  time.Duration(cfg.AuditTimeoutSeconds) * time.Second,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  serverMetrics,
		Service:  service,
		Sections: registry,

		closeFn: func() {
			bus.Close()
			if redisCache != nil {
				_ = redisCache.Close()
			}
			if resolver != nil {
				_ = resolver.Close(context.Background())
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// resolveLLMProvider picks one classification and relevance backend at
// startup: an OpenAI-compatible endpoint when a key is configured, the
// local ollama otherwise, and the deterministic rules floor when neither
// is available.
func resolveLLMProvider(
	cfg config.Config,
	policy domain.RankingPolicy,
	ollamaClient *ollama.Client,
	executor *resilience.Executor,
) (ports.QueryClassifier, ports.RelevanceJudge, string) {
	if cfg.OpenAIAPIKey != "" {
		provider := openaicompat.New(cfg.OpenAIAPIKey, openaicompat.Options{
			BaseURL:        cfg.OpenAIBaseURL,
			Model:          cfg.OpenAIModel,
			RequestTimeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
			RPS:            cfg.LLMGenerateRPS,
			Burst:          cfg.LLMGenerateBurst,
			Executor:       executor,
		})
		return provider, provider, "openai"
	}
	if ollamaClient != nil {
		return ollama.NewClassifier(ollamaClient), ollama.NewJudge(ollamaClient), "ollama"
	}
	return rules.NewClassifier(), rules.NewJudge(policy.Relevance), "rules"
}

type unavailableEmbedder struct{}

func (unavailableEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return nil, errors.New("no embedding backend configured")
}

// instrumentedCache counts lookups without the cache adapter knowing
// about metrics.
type instrumentedCache struct {
	inner   ports.ResponseCache
	metrics *metrics.HTTPServerMetrics
}

func (c *instrumentedCache) Get(ctx context.Context, key string) (*domain.ResponseBundle, bool, error) {
	bundle, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		c.metrics.RecordCacheLookup("api", hit)
	}
	return bundle, hit, err
}

func (c *instrumentedCache) Set(ctx context.Context, key string, bundle *domain.ResponseBundle) error {
	return c.inner.Set(ctx, key, bundle)
}

type WorkerApp struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.WorkerMetrics

	Bus   *auditnats.Bus
	Store ports.AuditStore

	closeFn func()
}

// NewWorker wires only what audit persistence needs: the bus and the
// store.
func NewWorker(ctx context.Context, cfg config.Config, logger *slog.Logger) (*WorkerApp, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := registrypg.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := registrypg.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	bus, err := auditnats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit bus: %w", err)
	}

	return &WorkerApp{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewWorkerMetrics("worker"),
		Bus:     bus,
		Store:   registrypg.NewAuditStore(db),

		closeFn: func() {
			bus.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *WorkerApp) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
