package orchestrator

import (
	"strings"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

const (
	recommendationHeader = "- *Recomendação*:"
	followupHeader       = "- *Acompanhamento* (opcional):"
)

// Render turns a validated specialist contract into the fixed user-facing
// format: the reply verbatim on the first line, then the Recomendação
// section when the recommendation is non-empty, then the Acompanhamento
// section when a follow-up resolves. Esclarecer wins over acompanhamento;
// the two are never rendered together.
func Render(result contractx.SpecialistResult) (string, error) {
	if err := result.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(result.Reply))

	if rec := strings.TrimSpace(*result.Recommendation); rec != "" {
		b.WriteByte('\n')
		b.WriteString(recommendationHeader)
		b.WriteByte('\n')
		b.WriteString(rec)
	}

	if followup := result.FollowupText(); followup != "" {
		b.WriteByte('\n')
		b.WriteString(followupHeader)
		b.WriteByte('\n')
		b.WriteString(followup)
	}

	return b.String(), nil
}
