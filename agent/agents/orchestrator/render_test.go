package orchestrator

import (
	"errors"
	"testing"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

func strptr(s string) *string { return &s }

func TestRenderReplyOnly(t *testing.T) {
	t.Parallel()

	got, err := Render(contractx.SpecialistResult{
		Domain:         "financeiro",
		Intent:         contractx.IntentConsultar,
		Reply:          "X",
		Recommendation: strptr(""),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "X" {
		t.Fatalf("Render() = %q, want exactly %q", got, "X")
	}
}

func TestRenderRecommendationAndClarify(t *testing.T) {
	t.Parallel()

	got, err := Render(contractx.SpecialistResult{
		Domain:         "financeiro",
		Intent:         contractx.IntentResumo,
		Reply:          "X",
		Recommendation: strptr("Y"),
		Clarify:        "Z",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "X\n- *Recomendação*:\nY\n- *Acompanhamento* (opcional):\nZ"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFollowupWithoutRecommendation(t *testing.T) {
	t.Parallel()

	got, err := Render(contractx.SpecialistResult{
		Domain:         "financeiro",
		Intent:         contractx.IntentResumo,
		Reply:          "Preciso do período para seguir.",
		Recommendation: strptr(""),
		Clarify:        "Qual período considerar (ex.: hoje, esta semana, mês passado)?",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "Preciso do período para seguir.\n- *Acompanhamento* (opcional):\nQual período considerar (ex.: hoje, esta semana, mês passado)?"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderClarifyWinsOverFollowup(t *testing.T) {
	t.Parallel()

	got, err := Render(contractx.SpecialistResult{
		Domain:         "agenda",
		Intent:         contractx.IntentCriar,
		Reply:          "Posso criar o evento.",
		Recommendation: strptr(""),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "Posso criar o evento." {
		t.Fatalf("Render() = %q", got)
	}

	withFollowup, err := Render(contractx.SpecialistResult{
		Domain:         "agenda",
		Intent:         contractx.IntentCriar,
		Reply:          "Posso criar o evento.",
		Recommendation: strptr(""),
		Followup:       "Confirmo o envio do convite?",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "Posso criar o evento.\n- *Acompanhamento* (opcional):\nConfirmo o envio do convite?"
	if withFollowup != want {
		t.Fatalf("Render() = %q, want %q", withFollowup, want)
	}
}

func TestRenderMissingFieldFails(t *testing.T) {
	t.Parallel()

	_, err := Render(contractx.SpecialistResult{
		Domain: "financeiro",
		Intent: contractx.IntentConsultar,
		Reply:  "X",
	})
	if !errors.Is(err, contractx.ErrContractViolation) {
		t.Fatalf("Render() error = %v, want ErrContractViolation", err)
	}

	_, err = Render(contractx.SpecialistResult{
		Domain:         "financeiro",
		Intent:         contractx.IntentConsultar,
		Recommendation: strptr(""),
	})
	if !errors.Is(err, contractx.ErrContractViolation) {
		t.Fatalf("Render() error = %v, want ErrContractViolation", err)
	}
}
