package rules

import (
	"context"
	"testing"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

func TestClassifierKeywordPrecedence(t *testing.T) {
	tests := []struct {
		query string
		want  domain.QueryType
	}{
		{"What is the punishment for murder?", domain.QueryCriminalOffence},
		{"How do I file an FIR against my neighbour?", domain.QueryProcedural},
		{"Can my landlord keep my security deposit?", domain.QueryCivilConceptual},
		{"What did the old penal code say about theft?", domain.QueryOldStatute},
		{"Tell me about the history of the constitution", domain.QueryDefault},
		{"punishment under the repealed evidence act", domain.QueryOldStatute},
	}
	classifier := NewClassifier()
	for _, tt := range tests {
		got, err := classifier.Classify(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", tt.query, err)
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestClassifierTokenCuesNeedWholeWords(t *testing.T) {
	classifier := NewClassifier()
	got, err := classifier.Classify(context.Background(), "I need confirmation of the filing date")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got == domain.QueryProcedural {
		t.Fatalf("\"fir\" inside \"confirmation\" must not classify as procedural")
	}
}

func TestJudgeGradesByOverlap(t *testing.T) {
	judge := NewJudge(domain.RelevanceThresholds{Relevant: 0.45, Tangential: 0.20})
	query := "landlord security deposit refund"

	tenancy := domain.Candidate{
		ID:   "tenancy-21",
		Text: "The landlord shall refund the security deposit at the end of the tenancy.",
	}
	verdict, err := judge.Judge(context.Background(), query, tenancy)
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceRelevant {
		t.Fatalf("tenancy verdict = %s, want RELEVANT", verdict)
	}

	arbitration := domain.Candidate{
		ID:   "arb-38",
		Text: "The arbitral tribunal may fix the deposit as an advance for the costs of arbitration.",
	}
	verdict, err = judge.Judge(context.Background(), query, arbitration)
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceTangential {
		t.Fatalf("arbitration verdict = %s, want TANGENTIAL", verdict)
	}

	murder := domain.Candidate{
		ID:   "bns-103",
		Text: "Whoever commits murder shall be punished with imprisonment for life.",
	}
	verdict, err = judge.Judge(context.Background(), query, murder)
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceNotApplicable {
		t.Fatalf("murder verdict = %s, want NOT_APPLICABLE", verdict)
	}
}

func TestJudgeCountsCitationIdentityTokens(t *testing.T) {
	judge := NewJudge(domain.RelevanceThresholds{Relevant: 0.45, Tangential: 0.20})
	candidate := domain.Candidate{
		ID:            "bns-103",
		Text:          "Punishment provisions.",
		ActCode:       "BNS",
		SectionNumber: "103",
	}
	verdict, err := judge.Judge(context.Background(), "explain bns 103 punishment", candidate)
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceRelevant {
		t.Fatalf("verdict = %s, want RELEVANT when act and section tokens match", verdict)
	}
}

func TestJudgeEmptyQueryFailsClosed(t *testing.T) {
	judge := NewJudge(domain.RelevanceThresholds{})
	verdict, err := judge.Judge(context.Background(), "the of and", domain.Candidate{ID: "x", Text: "anything"})
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if verdict != domain.RelevanceNotApplicable {
		t.Fatalf("verdict = %s, want NOT_APPLICABLE for contentless query", verdict)
	}
}
