// Package orchestrator owns the per-turn control loop: route the
// utterance, dispatch to the matching specialist, render the contract and
// persist both sides of the exchange in the session log.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	statex "github.com/assessor-ai/assessor/agent/state"
)

var ErrInvalidMessage = errors.New("message text is empty")

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

type Orchestrator struct {
	store  statex.Store
	models contractx.Registry

	graphRunner compose.Runnable[GraphInput, GraphOutput]

	now func() time.Time
}

func New(store statex.Store, models contractx.Registry) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}

	o := &Orchestrator{
		store:  store,
		models: models,
		now:    time.Now,
	}

	graphRunner, err := o.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleTurn runs one full user turn and returns the final user-facing
// text. The session id is an opaque caller-supplied token; turns with the
// same id share history.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID string, text string) (string, error) {
	start := o.now()
	out, err := o.graphRunner.Invoke(ctx, GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("session", sessionID).
			Dur("duration", o.now().Sub(start)).
			Msg("orchestrator: turn failed")
		return "", err
	}
	log.Info().
		Str("session", sessionID).
		Dur("duration", o.now().Sub(start)).
		Msg("orchestrator: turn completed")
	return out.Reply, nil
}
