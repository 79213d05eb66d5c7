package contract

import (
	"fmt"
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeRouter  AgentType = "router"
	AgentTypeFinance AgentType = "financeiro"
	AgentTypeAgenda  AgentType = "agenda"
	AgentTypeFAQ     AgentType = "faq"
)

type Route string

const (
	RouteFinance Route = "financeiro"
	RouteAgenda  Route = "agenda"
	RouteFAQ     Route = "faq"
)

func ParseRoute(s string) (Route, error) {
	switch Route(strings.ToLower(strings.TrimSpace(s))) {
	case RouteFinance:
		return RouteFinance, nil
	case RouteAgenda:
		return RouteAgenda, nil
	case RouteFAQ:
		return RouteFAQ, nil
	default:
		return "", fmt.Errorf("%w: rota %q", ErrRouteUnknown, s)
	}
}

// Handoff is the structured package the router passes to a specialist.
// OriginalQuestion carries the user's utterance verbatim; Clarify holds at
// most one minimal disambiguating question.
type Handoff struct {
	Route            Route  `json:"route"`
	OriginalQuestion string `json:"pergunta_original"`
	Persona          string `json:"persona"`
	Clarify          string `json:"clarify,omitempty"`
}

func (h Handoff) Validate() error {
	if _, err := ParseRoute(string(h.Route)); err != nil {
		return err
	}
	if strings.TrimSpace(h.OriginalQuestion) == "" {
		return fmt.Errorf("%w: pergunta_original vazia", ErrContractViolation)
	}
	return nil
}

// RouterOutput is the router's discriminated result: either a plain reply
// returned unchanged to the user, or a handoff to a specialist.
type RouterOutput struct {
	Reply   string
	Handoff *Handoff
}

func (o RouterOutput) IsHandoff() bool {
	return o.Handoff != nil
}

// Finance intents.
const (
	IntentConsultar = "consultar"
	IntentInserir   = "inserir"
	IntentAtualizar = "atualizar"
	IntentDeletar   = "deletar"
	IntentResumo    = "resumo"
)

// Agenda-only intents (consultar/atualizar are shared with finance).
const (
	IntentCriar           = "criar"
	IntentCancelar        = "cancelar"
	IntentListar          = "listar"
	IntentDisponibilidade = "disponibilidade"
	IntentConflitos       = "conflitos"
)

var financeIntents = map[string]struct{}{
	IntentConsultar: {},
	IntentInserir:   {},
	IntentAtualizar: {},
	IntentDeletar:   {},
	IntentResumo:    {},
}

var agendaIntents = map[string]struct{}{
	IntentConsultar:       {},
	IntentCriar:           {},
	IntentAtualizar:       {},
	IntentCancelar:        {},
	IntentListar:          {},
	IntentDisponibilidade: {},
	IntentConflitos:       {},
}

type TimeWindow struct {
	From  string `json:"de"`
	To    string `json:"ate"`
	Label string `json:"rotulo,omitempty"`
}

type Event struct {
	Title     string   `json:"titulo"`
	Date      string   `json:"data,omitempty"`
	Start     string   `json:"inicio,omitempty"`
	End       string   `json:"fim,omitempty"`
	Location  string   `json:"local,omitempty"`
	Attendees []string `json:"participantes,omitempty"`
}

type WriteOp struct {
	Operation string `json:"operacao"`
	ID        int64  `json:"id,omitempty"`
}

// SpecialistResult is the constrained JSON contract a specialist returns to
// the orchestrator. Field names follow the original wire contract.
// Recommendation is a pointer so a missing key and an empty string are
// distinguishable: the key is required, the value may be empty.
type SpecialistResult struct {
	Domain         string             `json:"dominio"`
	Intent         string             `json:"intencao"`
	Reply          string             `json:"resposta"`
	Recommendation *string            `json:"recomendacao"`
	Followup       string             `json:"acompanhamento,omitempty"`
	Clarify        string             `json:"esclarecer,omitempty"`
	TimeWindow     *TimeWindow        `json:"janela_tempo,omitempty"`
	Event          *Event             `json:"evento,omitempty"`
	Write          *WriteOp           `json:"escrita,omitempty"`
	Metrics        map[string]float64 `json:"indicadores,omitempty"`
}

// Validate enforces the contract at the trust boundary: the model output is
// free text until this passes.
func (r SpecialistResult) Validate() error {
	domain := strings.TrimSpace(r.Domain)
	var intents map[string]struct{}
	switch Route(domain) {
	case RouteFinance:
		intents = financeIntents
	case RouteAgenda:
		intents = agendaIntents
	default:
		return fmt.Errorf("%w: dominio %q", ErrContractViolation, r.Domain)
	}

	intent := strings.TrimSpace(r.Intent)
	if _, ok := intents[intent]; !ok {
		return fmt.Errorf("%w: intencao %q para dominio %q", ErrContractViolation, r.Intent, domain)
	}
	if strings.TrimSpace(r.Reply) == "" {
		return fmt.Errorf("%w: resposta vazia", ErrContractViolation)
	}
	if r.Recommendation == nil {
		return fmt.Errorf("%w: campo recomendacao ausente", ErrContractViolation)
	}
	if strings.TrimSpace(r.Clarify) != "" && strings.TrimSpace(r.Followup) != "" {
		return fmt.Errorf("%w: esclarecer e acompanhamento preenchidos ao mesmo tempo", ErrContractViolation)
	}

	if w := r.TimeWindow; w != nil {
		if err := validateDateOrDateTime("janela_tempo.de", w.From); err != nil {
			return err
		}
		if err := validateDateOrDateTime("janela_tempo.ate", w.To); err != nil {
			return err
		}
	}
	if e := r.Event; e != nil {
		if e.Date != "" {
			if err := validateLayout("evento.data", e.Date, "2006-01-02"); err != nil {
				return err
			}
		}
		if e.Start != "" {
			if err := validateLayout("evento.inicio", e.Start, "15:04"); err != nil {
				return err
			}
		}
		if e.End != "" {
			if err := validateLayout("evento.fim", e.End, "15:04"); err != nil {
				return err
			}
		}
	}
	return nil
}

// FollowupText resolves the follow-up precedence: esclarecer wins over
// acompanhamento; empty means no follow-up section.
func (r SpecialistResult) FollowupText() string {
	if s := strings.TrimSpace(r.Clarify); s != "" {
		return s
	}
	return strings.TrimSpace(r.Followup)
}

func validateDateOrDateTime(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s vazio", ErrContractViolation, field)
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s=%q não é YYYY-MM-DD nem YYYY-MM-DDTHH:MM", ErrContractViolation, field, value)
}

func validateLayout(field, value, layout string) error {
	if _, err := time.Parse(layout, value); err != nil {
		return fmt.Errorf("%w: %s=%q mal formado", ErrContractViolation, field, value)
	}
	return nil
}

// ToolRequest is a specialist's intent to invoke a named tool.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult carries a tool outcome back into the specialist's context.
// Error is a tool-level failure the specialist must report in its reply;
// it never aborts the turn.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
