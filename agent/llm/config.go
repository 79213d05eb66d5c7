// Package llm maps the process-wide OpenRouter settings onto the models
// each agent actually runs. The router gets a fast deterministic model,
// the specialists a stronger one. Any of them can be overridden from the
// environment.
package llm

import (
	"fmt"
	"strings"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	openrouterx "github.com/assessor-ai/assessor/pkg/openrouter"
)

// Config carries per-agent model overrides on top of the base OpenRouter
// settings. A zero temperature override means "keep the base value", so
// overrides below use -1 as the unset sentinel.
type Config struct {
	RouterModel string  `envconfig:"ROUTER_MODEL" split_words:"true"`
	RouterTemp  float32 `envconfig:"ROUTER_TEMP" split_words:"true" default:"-1"`

	FinanceModel string  `envconfig:"FINANCE_MODEL" split_words:"true"`
	FinanceTemp  float32 `envconfig:"FINANCE_TEMP" split_words:"true" default:"-1"`

	AgendaModel string  `envconfig:"AGENDA_MODEL" split_words:"true"`
	AgendaTemp  float32 `envconfig:"AGENDA_TEMP" split_words:"true" default:"-1"`

	FAQModel string  `envconfig:"FAQ_MODEL" split_words:"true"`
	FAQTemp  float32 `envconfig:"FAQ_TEMP" split_words:"true" default:"-1"`
}

// OpenRouterFor resolves the OpenRouter config for a given agent, applying
// the per-agent model and temperature overrides. The router deliberately
// defaults to temperature 0 so classification stays stable run to run.
func (c Config) OpenRouterFor(base openrouterx.Config, agent contractx.AgentType) (openrouterx.Config, error) {
	var name string
	var temp float32

	switch agent {
	case contractx.AgentTypeRouter:
		name, temp = c.RouterModel, c.RouterTemp
		if temp < 0 {
			temp = 0
		}
	case contractx.AgentTypeFinance:
		name, temp = c.FinanceModel, c.FinanceTemp
	case contractx.AgentTypeAgenda:
		name, temp = c.AgendaModel, c.AgendaTemp
	case contractx.AgentTypeFAQ:
		name, temp = c.FAQModel, c.FAQTemp
	default:
		return openrouterx.Config{}, fmt.Errorf("llm: no model mapping for agent %q", agent)
	}

	if strings.TrimSpace(name) == "" {
		name = base.Model
	}
	if temp < 0 {
		temp = base.Temperature
	}

	return base.WithModel(name, temp), nil
}
