package crossencoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestScoreSendsBatchAndDecodes(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rerank" {
			http.NotFound(w, r)
			return
		}
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"scores":[0.91,0.12]}`))
	}))
	defer server.Close()

	client := New(server.URL, "bge-reranker", 5*time.Second)
	scores, err := client.Score(context.Background(), "punishment for murder", []string{"text a", "text b"})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(scores) != 2 || scores[0] != 0.91 || scores[1] != 0.12 {
		t.Fatalf("unexpected scores: %v", scores)
	}

	if captured["query"] != "punishment for murder" {
		t.Fatalf("query not forwarded: %v", captured["query"])
	}
	docs := captured["documents"].([]any)
	if len(docs) != 2 || docs[0] != "text a" {
		t.Fatalf("documents not forwarded: %v", docs)
	}
	if captured["model"] != "bge-reranker" {
		t.Fatalf("model not forwarded: %v", captured["model"])
	}
}

func TestScoreRejectsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scores":[0.5]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	_, err := client.Score(context.Background(), "q", []string{"a", "b", "c"})
	if err == nil {
		t.Fatalf("expected error for score count mismatch")
	}
	if !strings.Contains(err.Error(), "1 scores for 3 documents") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScoreIncludesResponseBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	_, err := client.Score(context.Background(), "q", []string{"a"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model loading") {
		t.Fatalf("expected body in error, got %v", err)
	}
}

func TestScoreEmptyBatchSkipsCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	scores, err := client.Score(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if scores != nil || calls != 0 {
		t.Fatalf("empty batch must not call the service (scores=%v calls=%d)", scores, calls)
	}
}
