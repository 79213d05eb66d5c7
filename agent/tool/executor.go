package tool

import (
	"context"
	"encoding/json"
	"fmt"

	contractx "github.com/assessor-ai/assessor/agent/contract"
	transactionx "github.com/assessor-ai/assessor/agent/transaction"
)

// Executor runs a named tool against the transaction store. Tool-level
// failures come back inside ToolResult.Error so the specialist can report
// them in its reply; the returned error is reserved for broken plumbing.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

func NewExecutor(store transactionx.Store) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		result, err := dispatch(ctx, store, tool, args)
		if err != nil {
			return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
		}
		return contractx.ToolResult{Tool: tool, Result: result}, nil
	}
}

func dispatch(ctx context.Context, store transactionx.Store, tool string, args map[string]any) (any, error) {
	switch tool {
	case ToolAddTransaction:
		var parsed transactionx.AddArgs
		if err := decodeArgs(args, &parsed); err != nil {
			return nil, err
		}
		return store.Add(ctx, parsed)

	case ToolQueryTransactions:
		var parsed transactionx.QueryArgs
		if err := decodeArgs(args, &parsed); err != nil {
			return nil, err
		}
		txns, err := store.Query(ctx, parsed)
		if err != nil {
			return nil, err
		}
		return map[string]any{"transactions": txns}, nil

	case ToolUpdateTransaction:
		var parsed transactionx.UpdateArgs
		if err := decodeArgs(args, &parsed); err != nil {
			return nil, err
		}
		return store.Update(ctx, parsed)

	case ToolTotalBalance:
		balance, err := store.TotalBalance(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"balance": balance}, nil

	case ToolDailyBalance:
		var parsed struct {
			DateLocal string `json:"date_local"`
		}
		if err := decodeArgs(args, &parsed); err != nil {
			return nil, err
		}
		balance, err := store.DailyBalance(ctx, parsed.DateLocal)
		if err != nil {
			return nil, err
		}
		return map[string]any{"balance": balance, "date": parsed.DateLocal}, nil

	case ToolIntervalBalance, ToolIntervalIncome, ToolIntervalExpenses:
		var parsed struct {
			DateFromLocal string `json:"date_from_local"`
			DateToLocal   string `json:"date_to_local"`
		}
		if err := decodeArgs(args, &parsed); err != nil {
			return nil, err
		}
		var (
			total float64
			err   error
		)
		switch tool {
		case ToolIntervalBalance:
			total, err = store.IntervalBalance(ctx, parsed.DateFromLocal, parsed.DateToLocal)
		case ToolIntervalIncome:
			total, err = store.IntervalIncome(ctx, parsed.DateFromLocal, parsed.DateToLocal)
		default:
			total, err = store.IntervalExpenses(ctx, parsed.DateFromLocal, parsed.DateToLocal)
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"total":     total,
			"date_from": parsed.DateFromLocal,
			"date_to":   parsed.DateToLocal,
		}, nil

	default:
		return nil, fmt.Errorf("%w: tool %q não está disponível", contractx.ErrToolError, tool)
	}
}

// decodeArgs maps the model's loose argument object onto a typed args
// struct via JSON, so numeric and string coercion follow one set of rules.
func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: argumentos inválidos: %v", contractx.ErrToolError, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: argumentos inválidos: %v", contractx.ErrToolError, err)
	}
	return nil
}
