// Package router implements the first hop of every turn: a single model
// call that either answers the user directly or emits a handoff line
// protocol naming the specialist that should take over.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	handoffx "github.com/assessor-ai/assessor/agent/handoff"
	statex "github.com/assessor-ai/assessor/agent/state"
)

type routerImpl struct {
	runner  compose.Runnable[map[string]any, *schema.Message]
	persona string
	now     func() time.Time
}

var _ contractx.Router = (*routerImpl)(nil)

// New compiles the router graph. systemPrompt is the routing instruction
// template; persona is the shared persona block injected into handoffs when
// the model leaves PERSONA empty.
func New(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	persona string,
) (contractx.Router, error) {
	runner, err := compileRouterGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile router graph: %v", contractx.ErrModelInvoke, err)
	}
	return &routerImpl{
		runner:  runner,
		persona: strings.TrimSpace(persona),
		now:     time.Now,
	}, nil
}

func (r *routerImpl) Classify(ctx context.Context, utterance string, history []statex.Turn) (contractx.RouterOutput, error) {
	msg, err := r.runner.Invoke(ctx, map[string]any{
		"input":        utterance,
		"persona":      r.persona,
		"chat_history": statex.Transcript(history),
		"today_local":  r.now().Format("2006-01-02"),
	})
	if err != nil {
		return contractx.RouterOutput{}, fmt.Errorf("%w: router invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return contractx.RouterOutput{}, fmt.Errorf("%w: empty router response", contractx.ErrContractViolation)
	}

	out, err := handoffx.Decode(msg.Content)
	if err != nil {
		return contractx.RouterOutput{}, err
	}
	if !out.IsHandoff() {
		return out, nil
	}

	// The handoff must carry the question and persona even when the model
	// omits them; downstream specialists never see the raw utterance.
	if strings.TrimSpace(out.Handoff.OriginalQuestion) == "" {
		out.Handoff.OriginalQuestion = strings.TrimSpace(utterance)
	}
	if strings.TrimSpace(out.Handoff.Persona) == "" {
		out.Handoff.Persona = r.persona
	}
	if err := out.Handoff.Validate(); err != nil {
		return contractx.RouterOutput{}, fmt.Errorf("%w: %v", contractx.ErrContractViolation, err)
	}
	return out, nil
}

func compileRouterGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add router prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add router model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add router edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add router edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add router edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("router.classify_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile router graph: %w", err)
	}
	return runner, nil
}
