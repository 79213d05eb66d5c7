// Package transaction is the canonical tool-facing access layer for the
// transactions schema (transactions, transaction_types, categories).
package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

// Store is the persistence contract consumed by the finance tools. Each call
// is a single all-or-nothing unit; nothing here holds a transaction open
// across a model call.
type Store interface {
	Add(ctx context.Context, args AddArgs) (AddResult, error)
	Query(ctx context.Context, args QueryArgs) ([]Transaction, error)
	Update(ctx context.Context, args UpdateArgs) (UpdateResult, error)
	TotalBalance(ctx context.Context) (float64, error)
	DailyBalance(ctx context.Context, dateLocal string) (float64, error)
	IntervalBalance(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error)
	IntervalIncome(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error)
	IntervalExpenses(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error)
}

type Config struct {
	DSN      string `envconfig:"DSN" split_words:"true" required:"true"`
	Timezone string `envconfig:"TIMEZONE" split_words:"true" default:"America/Sao_Paulo"`
}

// PostgresStore implements Store on bun over the Postgres driver.
type PostgresStore struct {
	db  *bun.DB
	loc *time.Location
	now func() time.Time
}

func NewPostgresStore(cfg Config) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &PostgresStore{
		db:  db,
		loc: loc,
		now: time.Now,
	}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// resolveTypeID maps a human-given type name or id onto transaction_types.
// An unresolvable name is a tool-level error; absent both, EXPENSES is
// assumed, matching how users phrase most entries.
func (s *PostgresStore) resolveTypeID(ctx context.Context, idb bun.IDB, typeID int64, typeName string) (int64, error) {
	if strings.TrimSpace(typeName) != "" {
		normalized := NormalizeTypeName(typeName)
		var tt TransactionType
		err := idb.NewSelect().
			Model(&tt).
			Where("UPPER(tt.type) = ?", normalized).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: tipo inválido %q (use INCOME, EXPENSES ou TRANSFER)", contractx.ErrToolError, typeName)
		}
		if err != nil {
			return 0, err
		}
		return tt.ID, nil
	}
	if typeID > 0 {
		return typeID, nil
	}
	return defaultTypeID, nil
}

func (s *PostgresStore) resolveCategoryID(ctx context.Context, idb bun.IDB, name string) (*int64, error) {
	var cat Category
	err := idb.NewSelect().
		Model(&cat).
		Where("LOWER(c.name) = LOWER(?)", strings.TrimSpace(name)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: categoria %q não encontrada", contractx.ErrToolError, name)
	}
	if err != nil {
		return nil, err
	}
	return &cat.ID, nil
}

func (s *PostgresStore) Add(ctx context.Context, args AddArgs) (AddResult, error) {
	if err := args.Validate(); err != nil {
		return AddResult{}, err
	}

	typeID, err := s.resolveTypeID(ctx, s.db, args.TypeID, args.TypeName)
	if err != nil {
		return AddResult{}, err
	}

	occurredAt := s.now().In(s.loc)
	if args.OccurredAt != "" {
		occurredAt, err = parseLocalTimestamp(args.OccurredAt, s.loc)
		if err != nil {
			return AddResult{}, err
		}
	}

	txn := &Transaction{
		Amount:     args.Amount,
		TypeID:     typeID,
		OccurredAt: occurredAt,
		SourceText: args.SourceText,
	}
	if args.CategoryID > 0 {
		txn.CategoryID = &args.CategoryID
	}
	if args.Description != "" {
		txn.Description = &args.Description
	}
	if args.PaymentMethod != "" {
		txn.PaymentMethod = &args.PaymentMethod
	}

	if _, err := s.db.NewInsert().
		Model(txn).
		Returning("id, occurred_at").
		Exec(ctx); err != nil {
		return AddResult{}, err
	}

	return AddResult{
		Status:     "ok",
		ID:         txn.ID,
		OccurredAt: txn.OccurredAt.Format(time.RFC3339),
	}, nil
}

func (s *PostgresStore) Query(ctx context.Context, args QueryArgs) ([]Transaction, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	var txns []Transaction
	q := s.db.NewSelect().
		Model(&txns).
		ColumnExpr("t.*").
		ColumnExpr("tt.type AS type_name").
		Join("JOIN transaction_types AS tt ON tt.id = t.type")

	if args.Text != "" {
		pattern := "%" + args.Text + "%"
		q = q.Where("(t.source_text ILIKE ? OR t.description ILIKE ?)", pattern, pattern)
	}
	if args.TypeName != "" {
		q = q.Where("tt.type ILIKE ?", "%"+NormalizeTypeName(args.TypeName)+"%")
	}
	if args.DateLocal != "" {
		q = q.Where("t.occurred_at::date = ?::date", args.DateLocal)
	}
	if args.HasRange() {
		q = q.Where("t.occurred_at::date BETWEEN ?::date AND ?::date", args.DateFromLocal, args.DateToLocal).
			OrderExpr("t.occurred_at ASC")
	} else {
		q = q.OrderExpr("t.occurred_at DESC")
	}

	if err := q.Limit(args.EffectiveLimit()).Scan(ctx); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *PostgresStore) Update(ctx context.Context, args UpdateArgs) (UpdateResult, error) {
	if err := args.Validate(); err != nil {
		return UpdateResult{}, err
	}

	var result UpdateResult
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		targetID := args.ID
		if targetID == 0 {
			pattern := "%" + args.MatchText + "%"
			var found Transaction
			err := tx.NewSelect().
				Model(&found).
				Column("t.id").
				Where("(t.source_text ILIKE ? OR t.description ILIKE ?)", pattern, pattern).
				Where("t.occurred_at::date = ?::date", args.DateLocal).
				OrderExpr("t.occurred_at DESC").
				Limit(1).
				Scan(ctx)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: nenhuma transação encontrada para os filtros fornecidos", contractx.ErrToolError)
			}
			if err != nil {
				return err
			}
			targetID = found.ID
		}

		q := tx.NewUpdate().Model((*Transaction)(nil)).Where("id = ?", targetID)

		if args.Amount != nil {
			q = q.Set("amount = ?", *args.Amount)
		}
		if args.TypeID != nil || args.TypeName != "" {
			var given int64
			if args.TypeID != nil {
				given = *args.TypeID
			}
			typeID, err := s.resolveTypeID(ctx, tx, given, args.TypeName)
			if err != nil {
				return err
			}
			q = q.Set("type = ?", typeID)
		}
		if args.CategoryID != nil {
			q = q.Set("category_id = ?", *args.CategoryID)
		} else if args.CategoryName != "" {
			categoryID, err := s.resolveCategoryID(ctx, tx, args.CategoryName)
			if err != nil {
				return err
			}
			q = q.Set("category_id = ?", *categoryID)
		}
		if args.Description != nil {
			q = q.Set("description = ?", *args.Description)
		}
		if args.PaymentMethod != nil {
			q = q.Set("payment_method = ?", *args.PaymentMethod)
		}
		if args.OccurredAt != "" {
			occurredAt, err := parseLocalTimestamp(args.OccurredAt, s.loc)
			if err != nil {
				return err
			}
			q = q.Set("occurred_at = ?", occurredAt)
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}

		var updated Transaction
		err = tx.NewSelect().
			Model(&updated).
			ColumnExpr("t.*").
			ColumnExpr("tt.type AS type_name").
			Join("JOIN transaction_types AS tt ON tt.id = t.type").
			Where("t.id = ?", targetID).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		result = UpdateResult{
			Status:       "ok",
			RowsAffected: rowsAffected,
			ID:           targetID,
		}
		if err == nil {
			result.Updated = &updated
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}
	return result, nil
}

const netBalanceExpr = "COALESCE(SUM(CASE WHEN tt.type = 'INCOME' THEN t.amount END), 0) - COALESCE(SUM(CASE WHEN tt.type = 'EXPENSES' THEN t.amount END), 0)"

// Balance aggregates exclude TRANSFER rows by construction: only INCOME and
// EXPENSES participate in the summed cases.
func (s *PostgresStore) TotalBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := s.db.NewSelect().
		TableExpr("transactions AS t").
		Join("JOIN transaction_types AS tt ON tt.id = t.type").
		ColumnExpr(netBalanceExpr).
		Scan(ctx, &balance)
	return balance, err
}

func (s *PostgresStore) DailyBalance(ctx context.Context, dateLocal string) (float64, error) {
	if err := validateLocalDate("date_local", dateLocal); err != nil {
		return 0, err
	}
	var balance float64
	err := s.db.NewSelect().
		TableExpr("transactions AS t").
		Join("JOIN transaction_types AS tt ON tt.id = t.type").
		ColumnExpr(netBalanceExpr).
		Where("t.occurred_at::date = ?::date", dateLocal).
		Scan(ctx, &balance)
	return balance, err
}

func (s *PostgresStore) IntervalBalance(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error) {
	return s.intervalSum(ctx, netBalanceExpr, dateFromLocal, dateToLocal)
}

func (s *PostgresStore) IntervalIncome(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error) {
	return s.intervalSum(ctx, "COALESCE(SUM(CASE WHEN tt.type = 'INCOME' THEN t.amount END), 0)", dateFromLocal, dateToLocal)
}

func (s *PostgresStore) IntervalExpenses(ctx context.Context, dateFromLocal, dateToLocal string) (float64, error) {
	return s.intervalSum(ctx, "COALESCE(SUM(CASE WHEN tt.type = 'EXPENSES' THEN t.amount END), 0)", dateFromLocal, dateToLocal)
}

func (s *PostgresStore) intervalSum(ctx context.Context, expr, dateFromLocal, dateToLocal string) (float64, error) {
	if err := validateLocalDate("date_from_local", dateFromLocal); err != nil {
		return 0, err
	}
	if err := validateLocalDate("date_to_local", dateToLocal); err != nil {
		return 0, err
	}
	var total float64
	err := s.db.NewSelect().
		TableExpr("transactions AS t").
		Join("JOIN transaction_types AS tt ON tt.id = t.type").
		ColumnExpr(expr).
		Where("t.occurred_at::date BETWEEN ?::date AND ?::date", dateFromLocal, dateToLocal).
		Scan(ctx, &total)
	return total, err
}
