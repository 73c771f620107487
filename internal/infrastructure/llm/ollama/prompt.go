package ollama

import (
	"fmt"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

const maxPromptSnippet = 2000

func buildClassificationPrompt(query string) string {
	return `You classify questions about Indian law.
Return a strict JSON object with one key:
query_type: one of "criminal_offence", "civil_conceptual", "procedural", "old_statute", "default".
Use "old_statute" only when the question is about the repealed codes (IPC, CrPC, IEA) as such.
No markdown, no extra keys.

Question:
` + clip(query, maxPromptSnippet)
}

func buildRelevancePrompt(query string, candidate domain.Candidate) string {
	return fmt.Sprintf(`You judge whether a legal source answers a question.
Return a strict JSON object with one key:
relevance: "RELEVANT" if the source directly addresses the question,
"TANGENTIAL" if it is related background only,
"NOT_APPLICABLE" if it does not belong in the answer at all.
A shared keyword is not enough; judge the legal substance.
No markdown, no extra keys.

Question:
%s

Source (%s):
%s
`, clip(query, maxPromptSnippet), describeSource(candidate), clip(candidate.Text, maxPromptSnippet))
}

func describeSource(c domain.Candidate) string {
	if c.CaseCitation != "" {
		return c.CaseCitation
	}
	if c.ActCode != "" && c.SectionNumber != "" {
		return c.ActCode + " " + c.SectionNumber
	}
	return string(c.SourceType)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
