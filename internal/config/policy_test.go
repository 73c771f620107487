package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

func TestLoadRankingPolicyEmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadRankingPolicy("")
	if err != nil {
		t.Fatalf("LoadRankingPolicy() error = %v", err)
	}
	if policy.RRFK != 60 {
		t.Fatalf("expected default rrf k 60, got %d", policy.RRFK)
	}
	w := policy.WeightsFor(domain.QuerySectionLookup)
	if w.Dense != 1.0 || w.Sparse != 4.0 {
		t.Fatalf("unexpected section_lookup weights: %+v", w)
	}
}

func TestLoadRankingPolicyNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := []byte("rrf_k: 75\nweights:\n  section_lookup:\n    dense: 0.5\n    sparse: 5.0\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	policy, err := LoadRankingPolicy(path)
	if err != nil {
		t.Fatalf("LoadRankingPolicy() error = %v", err)
	}
	if policy.RRFK != 75 {
		t.Fatalf("expected rrf k 75 from file, got %d", policy.RRFK)
	}
	w := policy.WeightsFor(domain.QuerySectionLookup)
	if w.Dense != 0.5 || w.Sparse != 5.0 {
		t.Fatalf("unexpected weights from file: %+v", w)
	}
	if policy.PoolMultiplier != 4 {
		t.Fatalf("unset fields must take defaults, pool multiplier = %d", policy.PoolMultiplier)
	}
	if len(policy.Boosts) == 0 {
		t.Fatalf("unset boost table must take defaults")
	}
}

func TestLoadRankingPolicyRejectsUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("weights: [not, a, map"), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	if _, err := LoadRankingPolicy(path); err == nil {
		t.Fatalf("expected error for unparseable policy file")
	}
}
