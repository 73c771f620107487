package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

// LoadRankingPolicy reads the ranking policy from a YAML file. An empty
// path yields the compiled-in defaults; a partial file is normalized so
// unset fields keep their defaults too.
func LoadRankingPolicy(path string) (domain.RankingPolicy, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultRankingPolicy(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RankingPolicy{}, fmt.Errorf("read ranking policy: %w", err)
	}

	var policy domain.RankingPolicy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return domain.RankingPolicy{}, fmt.Errorf("parse ranking policy: %w", err)
	}
	return policy.Normalize(), nil
}
