package openaicompat

import (
	"fmt"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

const classifierSystemPrompt = `You classify questions about Indian law.
Respond with a JSON object holding a single key "query_type" whose value is
one of: "criminal_offence", "civil_conceptual", "procedural", "old_statute",
"default". Use "old_statute" only when the question is about the repealed
codes (IPC, CrPC, IEA) as such.`

const judgeSystemPrompt = `You judge whether a legal source answers a
question. Respond with a JSON object holding a single key "relevance" whose
value is "RELEVANT" when the source directly addresses the question,
"TANGENTIAL" when it is related background only, or "NOT_APPLICABLE" when it
does not belong in the answer at all. A shared keyword is not enough; judge
the legal substance.`

const maxUserSnippet = 2000

func classifierUserPrompt(query string) string {
	return clip(query, maxUserSnippet)
}

func judgeUserPrompt(query string, candidate domain.Candidate) string {
	return fmt.Sprintf("Question:\n%s\n\nSource (%s):\n%s",
		clip(query, maxUserSnippet),
		describeSource(candidate),
		clip(candidate.Text, maxUserSnippet),
	)
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
