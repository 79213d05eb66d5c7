// Package faq answers questions strictly from the normative FAQ document.
// Retrieval happens before the model call; with no relevant context the
// agent short-circuits to the fixed fallback answer and never invokes the
// model.
package faq

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

// FallbackAnswer is returned verbatim whenever the FAQ has nothing
// relevant to say. The wording is fixed.
const FallbackAnswer = "Não encontrei essa informação no FAQ."

type faqImpl struct {
	runner    compose.Runnable[map[string]any, *schema.Message]
	retriever contractx.ContextRetriever
}

var _ contractx.FAQAgent = (*faqImpl)(nil)

func New(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	retriever contractx.ContextRetriever,
) (contractx.FAQAgent, error) {
	if retriever == nil {
		return nil, fmt.Errorf("%w: faq retriever is required", contractx.ErrValidation)
	}

	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("CONTEXTO:\n{faq_context}\n\nPERGUNTA: {input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add faq prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add faq model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add faq edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add faq edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add faq edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("faq.answer_graph"))
	if err != nil {
		return nil, fmt.Errorf("%w: compile faq graph: %v", contractx.ErrModelInvoke, err)
	}

	return &faqImpl{
		runner:    runner,
		retriever: retriever,
	}, nil
}

func (f *faqImpl) Answer(ctx context.Context, question string) (string, error) {
	faqContext, err := f.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: faq retrieve: %v", contractx.ErrToolError, err)
	}
	if strings.TrimSpace(faqContext) == "" {
		log.Debug().Str("question", question).Msg("faq: no relevant context, using fallback")
		return FallbackAnswer, nil
	}

	msg, err := f.runner.Invoke(ctx, map[string]any{
		"input":       question,
		"faq_context": faqContext,
	})
	if err != nil {
		return "", fmt.Errorf("%w: faq invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return FallbackAnswer, nil
	}
	return strings.TrimSpace(msg.Content), nil
}
