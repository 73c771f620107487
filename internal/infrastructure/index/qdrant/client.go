package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/httpx"
)

// Named vectors the legal corpus collection is provisioned with. Every point
// carries both so one collection serves dense and sparse queries.
const (
	denseVectorName  = "dense"
	sparseVectorName = "sparse"
)

type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
}

func New(baseURL, collection string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: httpx.NewClient(30 * time.Second),
	}
}

func (c *Client) SearchDense(
	ctx context.Context,
	queryVector []float32,
	limit int,
	filter domain.SearchFilter,
) ([]domain.Candidate, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}
	return c.queryPoints(ctx, map[string]any{
		"query": queryVector,
		"using": denseVectorName,
	}, limit, filter)
}

func (c *Client) SearchSparse(
	ctx context.Context,
	queryText string,
	limit int,
	filter domain.SearchFilter,
) ([]domain.Candidate, error) {
	sparse := encodeSparseQuery(queryText)
	if len(sparse.Indices) == 0 {
		return nil, nil
	}
	return c.queryPoints(ctx, map[string]any{
		"query": sparse,
		"using": sparseVectorName,
	}, limit, filter)
}

func (c *Client) queryPoints(
	ctx context.Context,
	reqBody map[string]any,
	limit int,
	filter domain.SearchFilter,
) ([]domain.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}
	reqBody["limit"] = limit
	reqBody["with_payload"] = true
	if f := buildFilter(filter); f != nil {
		reqBody["filter"] = f
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal query body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/query", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant query request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return nil, fmt.Errorf("qdrant query status: %s: %s", resp.Status, msg)
		}
		return nil, fmt.Errorf("qdrant query status: %s", resp.Status)
	}

	points, err := decodeQueryPoints(resp.Body)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(points))
	for _, p := range points {
		out = append(out, candidateFromPayload(p.Payload))
	}
	return out, nil
}

func buildFilter(filter domain.SearchFilter) map[string]any {
	var must []map[string]any
	if filter.Role != "" {
		must = append(must, matchClause("access_roles", filter.Role))
	}
	if filter.ActCode != "" {
		must = append(must, matchClause("act_code", filter.ActCode))
	}
	if filter.Era != "" {
		must = append(must, matchClause("era", string(filter.Era)))
	}

	var mustNot []map[string]any
	if len(filter.ExcludeSourceTypes) > 0 {
		excluded := make([]string, 0, len(filter.ExcludeSourceTypes))
		for _, st := range filter.ExcludeSourceTypes {
			excluded = append(excluded, string(st))
		}
		mustNot = append(mustNot, map[string]any{
			"key":   "source_type",
			"match": map[string]any{"any": excluded},
		})
	}

	if len(must) == 0 && len(mustNot) == 0 {
		return nil
	}
	out := make(map[string]any, 2)
	if len(must) > 0 {
		out["must"] = must
	}
	if len(mustNot) > 0 {
		out["must_not"] = mustNot
	}
	return out
}

func matchClause(key, value string) map[string]any {
	return map[string]any{
		"key":   key,
		"match": map[string]any{"value": value},
	}
}

type scoredPoint struct {
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func decodeQueryPoints(r io.Reader) ([]scoredPoint, error) {
	var resp struct {
		Result struct {
			Points []scoredPoint `json:"points"`
		} `json:"result"`
	}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return resp.Result.Points, nil
}

func candidateFromPayload(payload map[string]any) domain.Candidate {
	return domain.Candidate{
		ID:                   getStringPayload(payload, "unit_id"),
		Text:                 getStringPayload(payload, "text"),
		SourceType:           domain.SourceType(getStringPayload(payload, "source_type")),
		ActCode:              getStringPayload(payload, "act_code"),
		SectionNumber:        getStringPayload(payload, "section_number"),
		CaseCitation:         getStringPayload(payload, "case_citation"),
		Era:                  domain.Era(getStringPayload(payload, "era")),
		ExtractionConfidence: getFloatPayload(payload, "extraction_confidence"),
		IsOffence:            getBoolPayload(payload, "is_offence"),
		AccessRoles:          getStringsPayload(payload, "access_roles"),
	}
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getFloatPayload(payload map[string]any, key string) float64 {
	v, ok := payload[key]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

func getBoolPayload(payload map[string]any, key string) bool {
	v, ok := payload[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func getStringsPayload(payload map[string]any, key string) []string {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
