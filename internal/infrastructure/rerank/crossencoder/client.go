// Package crossencoder calls an external cross-encoder scoring service. The
// pipeline treats it as best effort: any failure here surfaces as an error
// and the caller falls back to adjusted-score order.
package crossencoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/httpx"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func New(baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpx.NewClient(timeout),
	}
}

func (c *Client) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]any{
		"query":     query,
		"documents": texts,
	}
	if c.model != "" {
		reqBody["model"] = c.model
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal rerank body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(respBody)); msg != "" {
			return nil, fmt.Errorf("rerank status: %s: %s", resp.Status, msg)
		}
		return nil, fmt.Errorf("rerank status: %s", resp.Status)
	}

	var scored struct {
		Scores []float64 `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&scored); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", err)
	}
	if len(scored.Scores) != len(texts) {
		return nil, fmt.Errorf("rerank returned %d scores for %d documents", len(scored.Scores), len(texts))
	}
	return scored.Scores, nil
}
