package domain

import "time"

// StatuteSection is one row of the authoritative statute registry: the
// ground truth used for citation existence checks.
type StatuteSection struct {
	ActCode       string    `json:"act_code"`
	SectionNumber string    `json:"section_number"`
	Title         string    `json:"title"`
	Text          string    `json:"text,omitempty"`
	Era           Era       `json:"era"`
	IsOffence     bool      `json:"is_offence"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Precedent is one row of the precedent registry.
type Precedent struct {
	CaseCitation string    `json:"case_citation"`
	CaseName     string    `json:"case_name"`
	Court        string    `json:"court"`
	DecidedOn    time.Time `json:"decided_on"`
}
