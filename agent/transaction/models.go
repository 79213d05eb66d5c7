package transaction

import (
	"time"

	"github.com/uptrace/bun"
)

// Transaction type ids seeded in transaction_types.
const (
	TypeIncomeID   int64 = 1
	TypeExpensesID int64 = 2
	TypeTransferID int64 = 3
)

const (
	TypeIncome    = "INCOME"
	TypeExpenses  = "EXPENSES"
	TypeTransfer  = "TRANSFER"
	defaultTypeID = TypeExpensesID
)

type TransactionType struct {
	bun.BaseModel `bun:"table:transaction_types,alias:tt"`

	ID   int64  `bun:"id,pk"`
	Type string `bun:"type"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID   int64  `bun:"id,pk"`
	Name string `bun:"name"`
}

type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Amount        float64   `bun:"amount" json:"amount"`
	TypeID        int64     `bun:"type" json:"-"`
	CategoryID    *int64    `bun:"category_id" json:"category_id,omitempty"`
	Description   *string   `bun:"description" json:"description,omitempty"`
	PaymentMethod *string   `bun:"payment_method" json:"payment_method,omitempty"`
	OccurredAt    time.Time `bun:"occurred_at" json:"occurred_at"`
	SourceText    string    `bun:"source_text" json:"source_text"`

	TypeName string `bun:"type_name,scanonly" json:"type_name,omitempty"`
}
