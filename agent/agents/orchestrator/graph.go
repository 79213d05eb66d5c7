package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	statex "github.com/assessor-ai/assessor/agent/state"
)

type graphState struct {
	SessionID string
	Text      string
	History   []statex.Turn
	Routed    contractx.RouterOutput
	Reply     string
}

func (o *Orchestrator) compileHandleTurnGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			sessionID := strings.TrimSpace(in.SessionID)
			if sessionID == "" {
				return nil, fmt.Errorf("%w: empty session id", statex.ErrInvalidSession)
			}
			text := strings.TrimSpace(in.Text)
			if text == "" {
				return nil, fmt.Errorf("%w: session=%s", ErrInvalidMessage, sessionID)
			}
			return &graphState{SessionID: sessionID, Text: text}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_history",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			history, err := o.store.History(ctx, in.SessionID)
			if err != nil {
				return nil, fmt.Errorf("load session history: %w", err)
			}
			in.History = history
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_history: %w", err)
	}

	if err := graph.AddLambdaNode("classify",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			out, err := o.models.Router().Classify(ctx, in.Text, in.History)
			if err != nil {
				return nil, err
			}
			in.Routed = out
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify: %w", err)
	}

	if err := graph.AddLambdaNode("plain_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			in.Reply = strings.TrimSpace(in.Routed.Reply)
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node plain_reply: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			reply, err := o.dispatch(ctx, *in.Routed.Handoff, in.History)
			if err != nil {
				return nil, err
			}
			in.Reply = reply
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch: %w", err)
	}

	if err := graph.AddLambdaNode("persist_turns",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			now := o.now()
			if err := o.store.Append(ctx, in.SessionID, statex.UserTurn(in.Text, now)); err != nil {
				return GraphOutput{}, fmt.Errorf("append user turn: %w", err)
			}
			if err := o.store.Append(ctx, in.SessionID, statex.AssistantTurn(in.Reply, now)); err != nil {
				return GraphOutput{}, fmt.Errorf("append assistant turn: %w", err)
			}
			return GraphOutput{Reply: in.Reply}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_turns: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *graphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: orchestrator graph state is nil", contractx.ErrValidation)
			}
			if in.Routed.IsHandoff() {
				return "dispatch", nil
			}
			return "plain_reply", nil
		},
		map[string]bool{
			"dispatch":    true,
			"plain_reply": true,
		},
	)

	if err := graph.AddBranch("classify", branch); err != nil {
		return nil, fmt.Errorf("add dispatch branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_history"},
		{"load_history", "classify"},
		{"plain_reply", "persist_turns"},
		{"dispatch", "persist_turns"},
		{"persist_turns", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, h contractx.Handoff, history []statex.Turn) (string, error) {
	log.Debug().
		Str("route", string(h.Route)).
		Str("question", h.OriginalQuestion).
		Msg("orchestrator: dispatching handoff")

	switch h.Route {
	case contractx.RouteFAQ:
		return o.models.FAQ().Answer(ctx, h.OriginalQuestion)
	case contractx.RouteFinance:
		result, err := o.models.Finance().Handle(ctx, h, history)
		if err != nil {
			return "", err
		}
		log.Info().Str("route", string(h.Route)).Str("intent", result.Intent).Msg("orchestrator: specialist result")
		return Render(result)
	case contractx.RouteAgenda:
		result, err := o.models.Agenda().Handle(ctx, h, history)
		if err != nil {
			return "", err
		}
		log.Info().Str("route", string(h.Route)).Str("intent", result.Intent).Msg("orchestrator: specialist result")
		return Render(result)
	default:
		return "", fmt.Errorf("%w: %q", contractx.ErrRouteUnknown, h.Route)
	}
}
