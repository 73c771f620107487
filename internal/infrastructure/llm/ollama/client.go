package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/httpx"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

type Options struct {
	RequestTimeout time.Duration
	// GenerateRPS throttles generate calls (classification and relevance
	// judgments); zero disables the limiter. Embeddings are not throttled.
	GenerateRPS   float64
	GenerateBurst int
	Executor      *resilience.Executor
}

func New(baseURL, genModel, embedModel string) *Client {
	return NewWithOptions(baseURL, genModel, embedModel, Options{})
}

func NewWithOptions(baseURL, genModel, embedModel string, opts Options) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	var limiter *rate.Limiter
	if opts.GenerateRPS > 0 {
		burst := opts.GenerateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.GenerateRPS), burst)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: httpx.NewClient(timeout),
		limiter:    limiter,
		executor:   opts.Executor,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	request := map[string]any{
		"model": e.client.embedModel,
		"input": []string{text},
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := e.client.call(ctx, "embed", func(callCtx context.Context) error {
		return e.client.postJSON(callCtx, "/api/embed", request, &response, "embed")
	})
	if err != nil {
		return nil, err
	}
	if len(response.Embeddings) == 0 || len(response.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return response.Embeddings[0], nil
}

type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, query string) (domain.QueryType, error) {
	raw, err := c.client.generateJSON(ctx, buildClassificationPrompt(query))
	if err != nil {
		return "", err
	}

	var result struct {
		QueryType string `json:"query_type"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &result); err != nil {
		return "", fmt.Errorf("parse classification json: %w", err)
	}
	queryType, ok := domain.ParseQueryType(result.QueryType)
	if !ok {
		return "", fmt.Errorf("unknown query type %q", result.QueryType)
	}
	return queryType, nil
}

type Judge struct {
	client *Client
}

func NewJudge(client *Client) *Judge {
	return &Judge{client: client}
}

func (j *Judge) Judge(ctx context.Context, query string, candidate domain.Candidate) (domain.RelevanceStatus, error) {
	raw, err := j.client.generateJSON(ctx, buildRelevancePrompt(query, candidate))
	if err != nil {
		return "", err
	}

	var result struct {
		Relevance string `json:"relevance"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &result); err != nil {
		return "", fmt.Errorf("parse relevance json: %w", err)
	}
	status, ok := domain.ParseRelevanceStatus(result.Relevance)
	if !ok {
		return "", fmt.Errorf("unknown relevance verdict %q", result.Relevance)
	}
	return status, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("generate rate limit: %w", err)
		}
	}

	reqBody := map[string]any{
		"model":  c.genModel,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	}
	var response struct {
		Response string `json:"response"`
	}
	err := c.call(ctx, "generate", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/generate", reqBody, &response, "generate")
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

func (c *Client) call(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return wrapTemporaryIfNeeded(operation, fn(ctx))
	}
	err := c.executor.Execute(ctx, "ollama."+operation, fn, classifyOllamaError)
	return wrapTemporaryIfNeeded(operation, err)
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
