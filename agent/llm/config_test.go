package llm

import (
	"testing"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	openrouterx "github.com/assessor-ai/assessor/pkg/openrouter"
)

func baseConfig() openrouterx.Config {
	return openrouterx.Config{
		BaseURL:     "https://openrouter.ai/api/v1",
		APIKey:      "key",
		Model:       "openai/gpt-4o-mini",
		Temperature: 0.3,
	}
}

func TestOpenRouterForRouterDefaultsToTempZero(t *testing.T) {
	t.Parallel()

	cfg := Config{RouterTemp: -1, FinanceTemp: -1, AgendaTemp: -1, FAQTemp: -1}

	got, err := cfg.OpenRouterFor(baseConfig(), contractx.AgentTypeRouter)
	if err != nil {
		t.Fatalf("OpenRouterFor() error = %v", err)
	}
	if got.Temperature != 0 {
		t.Fatalf("router temperature = %v, want 0", got.Temperature)
	}
	if got.Model != "openai/gpt-4o-mini" {
		t.Fatalf("router model = %q, want base model", got.Model)
	}
}

func TestOpenRouterForSpecialistInheritsBase(t *testing.T) {
	t.Parallel()

	cfg := Config{RouterTemp: -1, FinanceTemp: -1, AgendaTemp: -1, FAQTemp: -1}

	got, err := cfg.OpenRouterFor(baseConfig(), contractx.AgentTypeFinance)
	if err != nil {
		t.Fatalf("OpenRouterFor() error = %v", err)
	}
	if got.Temperature != 0.3 {
		t.Fatalf("finance temperature = %v, want base 0.3", got.Temperature)
	}
}

func TestOpenRouterForOverrides(t *testing.T) {
	t.Parallel()

	cfg := Config{
		RouterTemp:   -1,
		FinanceModel: "anthropic/claude-sonnet-4",
		FinanceTemp:  0.7,
		AgendaTemp:   -1,
		FAQTemp:      -1,
	}

	got, err := cfg.OpenRouterFor(baseConfig(), contractx.AgentTypeFinance)
	if err != nil {
		t.Fatalf("OpenRouterFor() error = %v", err)
	}
	if got.Model != "anthropic/claude-sonnet-4" {
		t.Fatalf("finance model = %q", got.Model)
	}
	if got.Temperature != 0.7 {
		t.Fatalf("finance temperature = %v, want 0.7", got.Temperature)
	}
}

func TestOpenRouterForUnknownAgent(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := cfg.OpenRouterFor(baseConfig(), contractx.AgentType("planner")); err == nil {
		t.Fatal("expected error for unmapped agent")
	}
}
