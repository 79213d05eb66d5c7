package contract

import (
	"context"

	statex "github.com/assessor-ai/assessor/agent/state"
)

type Router interface {
	Classify(ctx context.Context, utterance string, history []statex.Turn) (RouterOutput, error)
}

type Specialist interface {
	Handle(ctx context.Context, h Handoff, history []statex.Turn) (SpecialistResult, error)
}

type FAQAgent interface {
	Answer(ctx context.Context, question string) (string, error)
}

// ContextRetriever returns the FAQ context relevant to a question,
// concatenated as plain text. Empty output means nothing relevant was found.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

type Registry interface {
	Router() Router
	Finance() Specialist
	Agenda() Specialist
	FAQ() FAQAgent
}
