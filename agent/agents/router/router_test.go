package router

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	statex "github.com/assessor-ai/assessor/agent/state"
)

type fakeChatModel struct {
	content string
	err     error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.content}, nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

const routerPrompt = "roteie a mensagem\n{persona}\n{today_local}\n{chat_history}"

func TestClassifyPlainReply(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{content: "Olá! Posso te ajudar com finanças ou agenda; por onde quer começar?"}

	r, err := New(context.Background(), fake, routerPrompt, "PERSONA SISTEMA")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := r.Classify(context.Background(), "oi", nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if out.IsHandoff() {
		t.Fatalf("expected plain reply, got handoff %#v", out.Handoff)
	}
	if out.Reply != fake.content {
		t.Fatalf("Reply = %q, want model output verbatim", out.Reply)
	}
}

func TestClassifyHandoff(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{content: "ROUTE=financeiro\n" +
		"PERGUNTA_ORIGINAL=Quanto gastei com mercado no mês passado?\n" +
		"PERSONA=PERSONA SISTEMA\n" +
		"CLARIFY="}

	r, err := New(context.Background(), fake, routerPrompt, "PERSONA SISTEMA")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := r.Classify(context.Background(), "Quanto gastei com mercado no mês passado?", nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if !out.IsHandoff() {
		t.Fatalf("expected handoff, got reply %q", out.Reply)
	}
	if out.Handoff.Route != contractx.RouteFinance {
		t.Fatalf("Route = %q, want financeiro", out.Handoff.Route)
	}
}

func TestClassifyFillsMissingHandoffFields(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{content: "ROUTE=agenda\nPERGUNTA_ORIGINAL=\nPERSONA=\nCLARIFY="}

	r, err := New(context.Background(), fake, routerPrompt, "PERSONA SISTEMA")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	history := []statex.Turn{}
	out, err := r.Classify(context.Background(), "Tenho reunião amanhã às 9h?", history)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if !out.IsHandoff() {
		t.Fatal("expected handoff")
	}
	if out.Handoff.OriginalQuestion != "Tenho reunião amanhã às 9h?" {
		t.Fatalf("OriginalQuestion = %q, want the utterance", out.Handoff.OriginalQuestion)
	}
	if out.Handoff.Persona != "PERSONA SISTEMA" {
		t.Fatalf("Persona = %q, want the shared persona block", out.Handoff.Persona)
	}
}

func TestClassifyBadRouteFails(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{content: "ROUTE=suporte\nPERGUNTA_ORIGINAL=oi\nPERSONA=p\nCLARIFY="}

	r, err := New(context.Background(), fake, routerPrompt, "PERSONA SISTEMA")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Classify(context.Background(), "oi", nil)
	if !errors.Is(err, contractx.ErrContractViolation) {
		t.Fatalf("Classify() error = %v, want ErrContractViolation", err)
	}
}

func TestClassifyModelFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{err: errors.New("upstream 503")}

	r, err := New(context.Background(), fake, routerPrompt, "PERSONA SISTEMA")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Classify(context.Background(), "oi", nil)
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("Classify() error = %v, want ErrModelInvoke", err)
	}
}
