package tool

import (
	"context"
	"fmt"
	"testing"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	transactionx "github.com/assessor-ai/assessor/agent/transaction"
)

type fakeStore struct {
	addArgs    *transactionx.AddArgs
	queryArgs  *transactionx.QueryArgs
	updateArgs *transactionx.UpdateArgs

	addErr error
}

func (f *fakeStore) Add(ctx context.Context, args transactionx.AddArgs) (transactionx.AddResult, error) {
	f.addArgs = &args
	if f.addErr != nil {
		return transactionx.AddResult{}, f.addErr
	}
	return transactionx.AddResult{Status: "ok", ID: 42, OccurredAt: "2025-08-31T10:00:00-03:00"}, nil
}

func (f *fakeStore) Query(ctx context.Context, args transactionx.QueryArgs) ([]transactionx.Transaction, error) {
	f.queryArgs = &args
	return []transactionx.Transaction{{ID: 1, Amount: 45.90}}, nil
}

func (f *fakeStore) Update(ctx context.Context, args transactionx.UpdateArgs) (transactionx.UpdateResult, error) {
	f.updateArgs = &args
	return transactionx.UpdateResult{Status: "ok", RowsAffected: 1, ID: args.ID}, nil
}

func (f *fakeStore) TotalBalance(ctx context.Context) (float64, error) {
	return 1234.56, nil
}

func (f *fakeStore) DailyBalance(ctx context.Context, dateLocal string) (float64, error) {
	return -45.90, nil
}

func (f *fakeStore) IntervalBalance(ctx context.Context, from, to string) (float64, error) {
	return 100, nil
}

func (f *fakeStore) IntervalIncome(ctx context.Context, from, to string) (float64, error) {
	return 5000, nil
}

func (f *fakeStore) IntervalExpenses(ctx context.Context, from, to string) (float64, error) {
	return 842.75, nil
}

func TestInfosFinanceOnly(t *testing.T) {
	t.Parallel()

	infos := Infos(contractx.RouteFinance)
	if len(infos) != 8 {
		t.Fatalf("expected 8 finance tools, got %d", len(infos))
	}
	if infos[0].Name != ToolAddTransaction {
		t.Fatalf("unexpected first tool: %s", infos[0].Name)
	}

	if got := Infos(contractx.RouteAgenda); got != nil {
		t.Fatalf("agenda route should expose no tools, got %d", len(got))
	}
	if got := Infos(contractx.RouteFAQ); got != nil {
		t.Fatalf("faq route should expose no tools, got %d", len(got))
	}
}

func TestExecutorAddTransaction(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	executor := NewExecutor(store)

	out, err := executor(context.Background(), ToolAddTransaction, map[string]any{
		"amount":      45.90,
		"source_text": "mercado hoje 45,90",
		"type_name":   "expenses",
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	if store.addArgs == nil {
		t.Fatal("store.Add was not called")
	}
	if store.addArgs.Amount != 45.90 || store.addArgs.TypeName != "expenses" {
		t.Fatalf("unexpected add args: %#v", store.addArgs)
	}

	result, ok := out.Result.(transactionx.AddResult)
	if !ok {
		t.Fatalf("Result type = %T, want AddResult", out.Result)
	}
	if result.ID != 42 {
		t.Fatalf("result.ID = %d, want 42", result.ID)
	}
}

func TestExecutorQueryWrapsTransactions(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	executor := NewExecutor(store)

	out, err := executor(context.Background(), ToolQueryTransactions, map[string]any{
		"text":  "mercado",
		"limit": 5,
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	wrapped, ok := out.Result.(map[string]any)
	if !ok {
		t.Fatalf("Result type = %T, want map", out.Result)
	}
	txns, ok := wrapped["transactions"].([]transactionx.Transaction)
	if !ok {
		t.Fatalf("transactions type = %T", wrapped["transactions"])
	}
	if len(txns) != 1 || txns[0].ID != 1 {
		t.Fatalf("unexpected transactions: %#v", txns)
	}
	if store.queryArgs.Limit != 5 {
		t.Fatalf("query limit = %d, want 5", store.queryArgs.Limit)
	}
}

func TestExecutorToolFailureStaysInResult(t *testing.T) {
	t.Parallel()

	store := &fakeStore{addErr: fmt.Errorf("%w: amount deve ser positivo", contractx.ErrToolError)}
	executor := NewExecutor(store)

	out, err := executor(context.Background(), ToolAddTransaction, map[string]any{
		"amount":      -1,
		"source_text": "x",
	})
	if err != nil {
		t.Fatalf("tool failure must not escalate, got error = %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected tool error message in result")
	}
	if out.Tool != ToolAddTransaction {
		t.Fatalf("out.Tool = %q", out.Tool)
	}
}

func TestExecutorUnknownTool(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(&fakeStore{})

	out, err := executor(context.Background(), "delete_everything", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected error message for unknown tool")
	}
}

func TestExecutorIntervalExpenses(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(&fakeStore{})

	out, err := executor(context.Background(), ToolIntervalExpenses, map[string]any{
		"date_from_local": "2025-08-01",
		"date_to_local":   "2025-08-31",
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	wrapped, ok := out.Result.(map[string]any)
	if !ok {
		t.Fatalf("Result type = %T, want map", out.Result)
	}
	if wrapped["total"] != 842.75 {
		t.Fatalf("total = %v, want 842.75", wrapped["total"])
	}
	if wrapped["date_from"] != "2025-08-01" || wrapped["date_to"] != "2025-08-31" {
		t.Fatalf("unexpected interval echo: %#v", wrapped)
	}
}
