package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

func TestClassifierParsesStrictJSON(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		if payload["format"] != "json" {
			t.Errorf("expected json format, got %v", payload["format"])
		}
		_, _ = w.Write([]byte(`{"response":"{\"query_type\":\"criminal_offence\"}"}`))
	}))
	defer server.Close()

	classifier := NewClassifier(New(server.URL, "gen", "embed"))
	queryType, err := classifier.Classify(context.Background(), "What is the punishment for theft?")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if queryType != domain.QueryCriminalOffence {
		t.Fatalf("query type = %s, want criminal_offence", queryType)
	}
	if !strings.Contains(capturedPrompt, "punishment for theft") {
		t.Fatalf("prompt missing the question: %s", capturedPrompt)
	}
}

func TestClassifierRejectsUnknownType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"{\"query_type\":\"poetry\"}"}`))
	}))
	defer server.Close()

	classifier := NewClassifier(New(server.URL, "gen", "embed"))
	if _, err := classifier.Classify(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for unknown query type")
	}
}

func TestJudgeIncludesSourceIdentityInPrompt(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		_, _ = w.Write([]byte(`{"response":"{\"relevance\":\"TANGENTIAL\"}"}`))
	}))
	defer server.Close()

	judge := NewJudge(New(server.URL, "gen", "embed"))
	verdict, err := judge.Judge(context.Background(), "punishment for murder", domain.Candidate{
		ID:            "ipc-302",
		Text:          "Whoever commits murder shall be punished with death.",
		SourceType:    domain.SourceStatuteSection,
		ActCode:       "IPC",
		SectionNumber: "302",
	})
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceTangential {
		t.Fatalf("verdict = %s, want TANGENTIAL", verdict)
	}
	if !strings.Contains(capturedPrompt, "IPC 302") || !strings.Contains(capturedPrompt, "commits murder") {
		t.Fatalf("prompt missing source identity or text: %s", capturedPrompt)
	}
}

func TestJudgeNormalizesVerdictCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"{\"relevance\":\" relevant \"}"}`))
	}))
	defer server.Close()

	judge := NewJudge(New(server.URL, "gen", "embed"))
	verdict, err := judge.Judge(context.Background(), "q", domain.Candidate{ID: "c"})
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceRelevant {
		t.Fatalf("verdict = %s, want RELEVANT", verdict)
	}
}

func TestEmbedQueryReturnsFirstVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"embeddings":[[0.25,0.5,0.75]]}`))
	}))
	defer server.Close()

	embedder := NewEmbedder(New(server.URL, "gen", "embed"))
	vector, err := embedder.EmbedQuery(context.Background(), "anticipatory bail")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vector) != 3 || vector[0] != 0.25 {
		t.Fatalf("unexpected vector: %v", vector)
	}
}

func TestEmbedQueryIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	embedder := NewEmbedder(New(server.URL, "gen", "embed"))
	_, err := embedder.EmbedQuery(context.Background(), "hello")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("502 should be classified temporary, got %v", err)
	}
}
