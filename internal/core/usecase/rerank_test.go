package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestRerankReordersByScore(t *testing.T) {
	selected := selectedList{
		statuteCandidate("first", "BNS", "1", 0.9),
		statuteCandidate("second", "BNS", "2", 0.9),
		statuteCandidate("third", "BNS", "3", 0.9),
	}
	reranker := &rerankFake{scores: []float64{0.2, 0.9, 0.5}}

	ranked, degraded := rerankCandidates(context.Background(), reranker, "query", selected)
	if degraded {
		t.Fatalf("unexpected degradation")
	}
	if reranker.calls != 1 {
		t.Fatalf("expected one batched call, got %d", reranker.calls)
	}
	wantOrder := []string{"second", "third", "first"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, ranked[i].ID, want)
		}
	}
	if ranked[0].RerankScore != 0.9 {
		t.Fatalf("rerank score not recorded: %v", ranked[0].RerankScore)
	}
}

func TestRerankFailureKeepsSelectionOrder(t *testing.T) {
	selected := selectedList{
		statuteCandidate("keep-1", "BNS", "1", 0.9),
		statuteCandidate("keep-2", "BNS", "2", 0.9),
	}
	selected[0].AdjustedScore = 0.8
	selected[1].AdjustedScore = 0.6

	ranked, degraded := rerankCandidates(context.Background(), &rerankFake{err: errors.New("reranker down")}, "query", selected)
	if !degraded {
		t.Fatalf("expected degraded=true on reranker failure")
	}
	if ranked[0].ID != "keep-1" || ranked[1].ID != "keep-2" {
		t.Fatalf("selection order must survive a reranker outage: %s, %s", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].RerankScore != 0 || ranked[1].RerankScore != 0 {
		t.Fatalf("no rerank scores should be recorded on failure")
	}
}

func TestRerankScoreCountMismatchDegrades(t *testing.T) {
	selected := selectedList{
		statuteCandidate("a", "BNS", "1", 0.9),
		statuteCandidate("b", "BNS", "2", 0.9),
	}
	_, degraded := rerankCandidates(context.Background(), &rerankFake{scores: []float64{0.5}}, "query", selected)
	if !degraded {
		t.Fatalf("expected degradation on score/candidate count mismatch")
	}
}

func TestRerankNilPortDegrades(t *testing.T) {
	selected := selectedList{statuteCandidate("a", "BNS", "1", 0.9)}
	ranked, degraded := rerankCandidates(context.Background(), nil, "query", selected)
	if !degraded {
		t.Fatalf("expected degradation without a configured reranker")
	}
	if len(ranked) != 1 || ranked[0].ID != "a" {
		t.Fatalf("candidates must pass through unchanged")
	}
}

func TestRerankEmptyInput(t *testing.T) {
	ranked, degraded := rerankCandidates(context.Background(), nil, "query", nil)
	if degraded || len(ranked) != 0 {
		t.Fatalf("empty input must be a clean no-op")
	}
}
