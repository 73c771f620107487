package domain

// FusionWeights are the per-signal multipliers applied to reciprocal ranks
// during fusion.
type FusionWeights struct {
	Dense  float64 `yaml:"dense" json:"dense"`
	Sparse float64 `yaml:"sparse" json:"sparse"`
}

// BoostRule is one declarative score adjustment. Empty condition fields
// match anything; set fields must all match for the boost to apply.
type BoostRule struct {
	Name           string     `yaml:"name" json:"name"`
	Boost          float64    `yaml:"boost" json:"boost"`
	QueryType      QueryType  `yaml:"query_type,omitempty" json:"query_type,omitempty"`
	EraHint        Era        `yaml:"era_hint,omitempty" json:"era_hint,omitempty"`
	CandidateEra   Era        `yaml:"candidate_era,omitempty" json:"candidate_era,omitempty"`
	SourceType     SourceType `yaml:"source_type,omitempty" json:"source_type,omitempty"`
	RequireOffence bool       `yaml:"require_offence,omitempty" json:"require_offence,omitempty"`
}

func (b BoostRule) Matches(c Candidate, qc QueryContext) bool {
	if b.QueryType != "" && b.QueryType != qc.QueryType {
		return false
	}
	if b.EraHint != "" && b.EraHint != qc.EraHint {
		return false
	}
	if b.CandidateEra != "" && b.CandidateEra != c.Era {
		return false
	}
	if b.SourceType != "" && b.SourceType != c.SourceType {
		return false
	}
	if b.RequireOffence && !c.IsOffence {
		return false
	}
	return true
}

// RelevanceThresholds tune the rule-based relevance judge. The boundary
// between tangential and not-applicable is policy, not code.
type RelevanceThresholds struct {
	Relevant   float64 `yaml:"relevant" json:"relevant"`
	Tangential float64 `yaml:"tangential" json:"tangential"`
}

// RankingPolicy is the declarative part of the ranking pipeline: fusion
// constants, per-query-type signal weights, and the boost rule table.
type RankingPolicy struct {
	RRFK             int                         `yaml:"rrf_k" json:"rrf_k"`
	PoolMultiplier   int                         `yaml:"pool_multiplier" json:"pool_multiplier"`
	ConfidenceFloor  float64                     `yaml:"confidence_floor" json:"confidence_floor"`
	ConfidenceWeight float64                     `yaml:"confidence_weight" json:"confidence_weight"`
	Weights          map[QueryType]FusionWeights `yaml:"weights" json:"weights"`
	Boosts           []BoostRule                 `yaml:"boosts" json:"boosts"`
	Relevance        RelevanceThresholds         `yaml:"relevance" json:"relevance"`
}

// WeightsFor returns the signal weights for a query type, falling back to
// the default profile for unknown types.
func (p RankingPolicy) WeightsFor(qt QueryType) FusionWeights {
	if w, ok := p.Weights[qt]; ok {
		return w
	}
	if w, ok := p.Weights[QueryDefault]; ok {
		return w
	}
	return FusionWeights{Dense: 2.0, Sparse: 1.0}
}

func DefaultRankingPolicy() RankingPolicy {
	return RankingPolicy{
		RRFK:             60,
		PoolMultiplier:   4,
		ConfidenceFloor:  0.7,
		ConfidenceWeight: 0.3,
		Weights: map[QueryType]FusionWeights{
			QuerySectionLookup:   {Dense: 1.0, Sparse: 4.0},
			QueryCriminalOffence: {Dense: 2.0, Sparse: 1.5},
			QueryCivilConceptual: {Dense: 3.0, Sparse: 1.0},
			QueryProcedural:      {Dense: 2.0, Sparse: 1.0},
			QueryOldStatute:      {Dense: 1.0, Sparse: 3.0},
			QueryDefault:         {Dense: 2.0, Sparse: 1.0},
		},
		Boosts: []BoostRule{
			{
				Name:         "current_era_alignment",
				Boost:        0.15,
				EraHint:      EraCurrentCode,
				CandidateEra: EraCurrentCode,
			},
			{
				Name:           "offence_section",
				Boost:          0.10,
				QueryType:      QueryCriminalOffence,
				RequireOffence: true,
			},
		},
		Relevance: RelevanceThresholds{
			Relevant:   0.45,
			Tangential: 0.20,
		},
	}
}

// Normalize fills zero values with defaults so a partial policy file still
// yields a usable policy.
func (p RankingPolicy) Normalize() RankingPolicy {
	def := DefaultRankingPolicy()
	if p.RRFK <= 0 {
		p.RRFK = def.RRFK
	}
	if p.PoolMultiplier <= 0 {
		p.PoolMultiplier = def.PoolMultiplier
	}
	if p.ConfidenceFloor <= 0 {
		p.ConfidenceFloor = def.ConfidenceFloor
	}
	if p.ConfidenceWeight <= 0 {
		p.ConfidenceWeight = def.ConfidenceWeight
	}
	if len(p.Weights) == 0 {
		p.Weights = def.Weights
	}
	if p.Boosts == nil {
		p.Boosts = def.Boosts
	}
	if p.Relevance.Relevant <= 0 {
		p.Relevance.Relevant = def.Relevance.Relevant
	}
	if p.Relevance.Tangential <= 0 {
		p.Relevance.Tangential = def.Relevance.Tangential
	}
	return p
}
