package domain

type SourceType string

const (
	SourceStatuteSection    SourceType = "statute_section"
	SourceSubSection        SourceType = "sub_section"
	SourceJudgmentChunk     SourceType = "judgment_chunk"
	SourceTransitionMapping SourceType = "transition_mapping"
	SourceTemplate          SourceType = "template"
)

type Era string

const (
	EraCurrentCode    Era = "current_code"
	EraSupersededCode Era = "superseded_code"
	EraGeneralStatute Era = "general_statute"
)

// Candidate is one retrievable unit of the legal corpus. Identity and text
// never change after retrieval; pipeline stages only fill in rank and score
// fields, so the final candidate carries its full scoring history.
type Candidate struct {
	ID                   string     `json:"id"`
	Text                 string     `json:"text"`
	SourceType           SourceType `json:"source_type"`
	ActCode              string     `json:"act_code,omitempty"`
	SectionNumber        string     `json:"section_number,omitempty"`
	CaseCitation         string     `json:"case_citation,omitempty"`
	Era                  Era        `json:"era"`
	ExtractionConfidence float64    `json:"extraction_confidence"`
	IsOffence            bool       `json:"is_offence"`
	AccessRoles          []string   `json:"access_roles,omitempty"`

	// 1-based positions in each retriever's result list; 0 means the
	// retriever did not return the candidate.
	DenseRank  int `json:"dense_rank"`
	SparseRank int `json:"sparse_rank"`

	FusedScore    float64 `json:"fused_score"`
	AdjustedScore float64 `json:"adjusted_score"`
	RerankScore   float64 `json:"rerank_score"`
}

func (c Candidate) IsStatutory() bool {
	switch c.SourceType {
	case SourceStatuteSection, SourceSubSection, SourceTransitionMapping:
		return true
	default:
		return false
	}
}

func (c Candidate) IsPrecedent() bool {
	return c.SourceType == SourceJudgmentChunk
}

type SearchFilter struct {
	Role               string
	ActCode            string
	Era                Era
	ExcludeSourceTypes []SourceType
}
