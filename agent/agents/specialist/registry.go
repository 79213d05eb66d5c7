package specialist

import (
	"context"
	"fmt"

	faqx "github.com/assessor-ai/assessor/agent/agents/faq"
	routerx "github.com/assessor-ai/assessor/agent/agents/router"
	contractx "github.com/assessor-ai/assessor/agent/contract"
	llmx "github.com/assessor-ai/assessor/agent/llm"
	promptx "github.com/assessor-ai/assessor/agent/prompt"
	toolx "github.com/assessor-ai/assessor/agent/tool"
	transactionx "github.com/assessor-ai/assessor/agent/transaction"
	openrouterx "github.com/assessor-ai/assessor/pkg/openrouter"
)

type registryImpl struct {
	router  contractx.Router
	finance contractx.Specialist
	agenda  contractx.Specialist
	faq     contractx.FAQAgent
}

func (r *registryImpl) Router() contractx.Router {
	return r.router
}

func (r *registryImpl) Finance() contractx.Specialist {
	return r.finance
}

func (r *registryImpl) Agenda() contractx.Specialist {
	return r.agenda
}

func (r *registryImpl) FAQ() contractx.FAQAgent {
	return r.faq
}

// NewRegistry wires one chat model per agent on top of the shared
// OpenRouter endpoint and assembles the router, the two contract
// specialists and the FAQ agent.
func NewRegistry(
	ctx context.Context,
	base openrouterx.Config,
	cfg llmx.Config,
	store transactionx.Store,
	retriever contractx.ContextRetriever,
) (contractx.Registry, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: transaction store is required", contractx.ErrValidation)
	}

	prompts, err := promptx.Load()
	if err != nil {
		return nil, err
	}

	routerModelCfg, err := cfg.OpenRouterFor(base, contractx.AgentTypeRouter)
	if err != nil {
		return nil, err
	}
	routerModel, err := routerModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create router model: %v", contractx.ErrModelInvoke, err)
	}

	financeModelCfg, err := cfg.OpenRouterFor(base, contractx.AgentTypeFinance)
	if err != nil {
		return nil, err
	}
	financeModel, err := financeModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create finance model: %v", contractx.ErrModelInvoke, err)
	}

	agendaModelCfg, err := cfg.OpenRouterFor(base, contractx.AgentTypeAgenda)
	if err != nil {
		return nil, err
	}
	agendaModel, err := agendaModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create agenda model: %v", contractx.ErrModelInvoke, err)
	}

	faqModelCfg, err := cfg.OpenRouterFor(base, contractx.AgentTypeFAQ)
	if err != nil {
		return nil, err
	}
	faqModel, err := faqModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create faq model: %v", contractx.ErrModelInvoke, err)
	}

	router, err := routerx.New(ctx, routerModel, prompts.Router, prompts.Persona)
	if err != nil {
		return nil, err
	}

	executor := toolx.NewExecutor(store)
	finance, err := newSpecialist(ctx, contractx.RouteFinance, financeModel, prompts.Finance, executor)
	if err != nil {
		return nil, err
	}
	agenda, err := newSpecialist(ctx, contractx.RouteAgenda, agendaModel, prompts.Agenda, nil)
	if err != nil {
		return nil, err
	}

	faq, err := faqx.New(ctx, faqModel, prompts.FAQ, retriever)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		router:  router,
		finance: finance,
		agenda:  agenda,
		faq:     faq,
	}, nil
}
