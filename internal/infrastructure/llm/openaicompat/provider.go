// Package openaicompat serves classification and relevance judgments from
// any OpenAI-compatible chat endpoint. It is the preferred provider when an
// API key is configured; ollama remains the self-hosted fallback.
package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/httpx"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/resilience"
)

type Provider struct {
	client   *openai.Client
	model    string
	limiter  *rate.Limiter
	executor *resilience.Executor
}

type Options struct {
	BaseURL        string
	Model          string
	RequestTimeout time.Duration
	RPS            float64
	Burst          int
	Executor       *resilience.Executor
}

func New(apiKey string, opts Options) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.RequestTimeout > 0 {
		cfg.HTTPClient = httpx.NewClient(opts.RequestTimeout)
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Provider{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		limiter:  limiter,
		executor: opts.Executor,
	}
}

func (p *Provider) Classify(ctx context.Context, query string) (domain.QueryType, error) {
	raw, err := p.completeJSON(ctx, "classify", classifierSystemPrompt, classifierUserPrompt(query))
	if err != nil {
		return "", err
	}

	var result struct {
		QueryType string `json:"query_type"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("parse classification json: %w", err)
	}
	queryType, ok := domain.ParseQueryType(result.QueryType)
	if !ok {
		return "", fmt.Errorf("unknown query type %q", result.QueryType)
	}
	return queryType, nil
}

func (p *Provider) Judge(ctx context.Context, query string, candidate domain.Candidate) (domain.RelevanceStatus, error) {
	raw, err := p.completeJSON(ctx, "judge", judgeSystemPrompt, judgeUserPrompt(query, candidate))
	if err != nil {
		return "", err
	}

	var result struct {
		Relevance string `json:"relevance"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("parse relevance json: %w", err)
	}
	status, ok := domain.ParseRelevanceStatus(result.Relevance)
	if !ok {
		return "", fmt.Errorf("unknown relevance verdict %q", result.Relevance)
	}
	return status, nil
}

func (p *Provider) completeJSON(ctx context.Context, operation, system, user string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%s rate limit: %w", operation, err)
		}
	}

	request := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	var response openai.ChatCompletionResponse
	call := func(callCtx context.Context) error {
		var err error
		response, err = p.client.CreateChatCompletion(callCtx, request)
		if err != nil {
			return fmt.Errorf("%s completion: %w", operation, err)
		}
		return nil
	}

	var err error
	if p.executor != nil {
		err = p.executor.Execute(ctx, "openai."+operation, call, classifyAPIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s completion returned no choices", operation)
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
