package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

var (
	//go:embed template/persona.txt
	personaRaw string

	//go:embed template/router.txt
	routerRaw string

	//go:embed template/financeiro.txt
	financeRaw string

	//go:embed template/agenda.txt
	agendaRaw string

	//go:embed template/faq.txt
	faqRaw string
)

// Set holds the loaded prompt content. Persona is the shared system persona
// block the router forwards inside handoffs.
type Set struct {
	Persona string
	Router  string
	Finance string
	Agenda  string
	FAQ     string
}

func Load() (Set, error) {
	set := Set{
		Persona: strings.TrimSpace(personaRaw),
		Router:  strings.TrimSpace(routerRaw),
		Finance: strings.TrimSpace(financeRaw),
		Agenda:  strings.TrimSpace(agendaRaw),
		FAQ:     strings.TrimSpace(faqRaw),
	}
	for name, content := range map[string]string{
		"persona":    set.Persona,
		"router":     set.Router,
		"financeiro": set.Finance,
		"agenda":     set.Agenda,
		"faq":        set.FAQ,
	} {
		if content == "" {
			return Set{}, fmt.Errorf("%w: prompt %q", contractx.ErrPromptMissing, name)
		}
	}
	return set, nil
}
