// Package specialist hosts the domain agents behind the router. Each
// specialist receives the handoff wire text as its task input and must
// answer with the constrained JSON contract; the finance specialist may
// first plan and execute tool calls against the transaction store.
package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	handoffx "github.com/assessor-ai/assessor/agent/handoff"
	statex "github.com/assessor-ai/assessor/agent/state"
	toolx "github.com/assessor-ai/assessor/agent/tool"
)

type specialistImpl struct {
	route            contractx.Route
	structuredRunner compose.Runnable[map[string]any, contractx.SpecialistResult]
	toolRunner       compose.Runnable[map[string]any, *schema.Message]
	executor         toolx.Executor
	allowedTools     map[string]struct{}
	now              func() time.Time
}

var _ contractx.Specialist = (*specialistImpl)(nil)

func newSpecialist(
	ctx context.Context,
	route contractx.Route,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	executor toolx.Executor,
) (*specialistImpl, error) {
	structuredRunner, err := compileStructuredGraph[contractx.SpecialistResult](
		ctx, chatModel, systemPrompt, fmt.Sprintf("specialist.%s_graph", route),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: compile structured graph for %s: %v", contractx.ErrModelInvoke, route, err)
	}

	spec := &specialistImpl{
		route:            route,
		structuredRunner: structuredRunner,
		now:              time.Now,
	}

	tools := toolx.Infos(route)
	if len(tools) > 0 {
		if executor == nil {
			return nil, fmt.Errorf("%w: specialist %s requires a tool executor", contractx.ErrValidation, route)
		}
		toolModel, err := chatModel.WithTools(tools)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for %s: %v", contractx.ErrModelInvoke, route, err)
		}
		toolRunner, err := compileToolPlanningGraph(
			ctx, toolModel, systemPrompt, fmt.Sprintf("specialist.%s_tool_graph", route),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: compile tool planning graph for %s: %v", contractx.ErrModelInvoke, route, err)
		}
		spec.toolRunner = toolRunner
		spec.executor = executor

		spec.allowedTools = make(map[string]struct{}, len(tools))
		for _, t := range tools {
			if t == nil || strings.TrimSpace(t.Name) == "" {
				continue
			}
			spec.allowedTools[t.Name] = struct{}{}
		}
	}

	return spec, nil
}

func (s *specialistImpl) Handle(ctx context.Context, h contractx.Handoff, history []statex.Turn) (contractx.SpecialistResult, error) {
	if err := h.Validate(); err != nil {
		return contractx.SpecialistResult{}, err
	}
	if h.Route != s.route {
		return contractx.SpecialistResult{}, fmt.Errorf("%w: handoff para %q entregue ao especialista %q", contractx.ErrValidation, h.Route, s.route)
	}

	input := handoffx.Encode(h)

	var toolResults []contractx.ToolResult
	if s.toolRunner != nil {
		results, err := s.planAndRunTools(ctx, input, history)
		if err != nil {
			return contractx.SpecialistResult{}, err
		}
		toolResults = results
	}

	if len(toolResults) > 0 {
		encoded, err := json.Marshal(toolResults)
		if err != nil {
			return contractx.SpecialistResult{}, fmt.Errorf("%w: marshal tool results: %v", contractx.ErrValidation, err)
		}
		input = input + "\nRESULTADOS_FERRAMENTAS=" + string(encoded)
	}

	out, err := s.structuredRunner.Invoke(ctx, s.payload(input, history))
	if err != nil {
		return contractx.SpecialistResult{}, fmt.Errorf("%w: specialist %s invoke: %v", contractx.ErrModelInvoke, s.route, err)
	}

	if strings.TrimSpace(out.Domain) != string(s.route) {
		return contractx.SpecialistResult{}, fmt.Errorf("%w: dominio %q fora da rota %q", contractx.ErrContractViolation, out.Domain, s.route)
	}
	if err := out.Validate(); err != nil {
		return contractx.SpecialistResult{}, err
	}
	return out, nil
}

// planAndRunTools asks the tool-bound model for tool calls and executes
// them. A plain-text answer at this stage means no tools are needed, so it
// returns an empty slice and lets the structured pass produce the contract.
func (s *specialistImpl) planAndRunTools(ctx context.Context, input string, history []statex.Turn) ([]contractx.ToolResult, error) {
	msg, err := s.toolRunner.Invoke(ctx, s.payload(input, history))
	if err != nil {
		return nil, fmt.Errorf("%w: tool planning invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty tool planning response", contractx.ErrContractViolation)
	}

	requests, err := toToolRequests(msg.ToolCalls)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}

	results := make([]contractx.ToolResult, 0, len(requests))
	for _, req := range requests {
		if _, ok := s.allowedTools[req.Tool]; !ok {
			return nil, fmt.Errorf("%w: ferramenta %q não permitida para %s", contractx.ErrContractViolation, req.Tool, s.route)
		}
		res, err := s.executor(ctx, req.Tool, req.Args)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *specialistImpl) payload(input string, history []statex.Turn) map[string]any {
	return map[string]any{
		"input":        input,
		"chat_history": statex.Transcript(history),
		"today_local":  s.now().Format("2006-01-02"),
	}
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call sem nome", contractx.ErrContractViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: argumentos inválidos para %s: %v", contractx.ErrContractViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
