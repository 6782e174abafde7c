package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction is an imported ledger line under one account. Immutable
// once imported.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Date      time.Time
	Amount    decimal.Decimal
	Label     string
	Category  string
	IsPro     bool
	CreatedAt time.Time
}

// Create is the input for importing a transaction. The natural key is
// (account, date, amount, label); duplicate inserts are silently
// ignored.
type Create struct {
	AccountID uuid.UUID
	Date      time.Time
	Amount    decimal.Decimal
	Label     string
	Category  string
	IsPro     bool
}

// ITable defines read-side transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*Transaction, error)
}

// IWriter defines transactional mutations used by operator actions.
type IWriter interface {
	InsertIfAbsent(ctx context.Context, create *Create) (bool, error)
}

type transactionRow struct {
	ID        uuid.UUID       `db:"id"`
	AccountID uuid.UUID       `db:"account_id"`
	Date      time.Time       `db:"transaction_date"`
	Amount    decimal.Decimal `db:"amount"`
	Label     string          `db:"label"`
	Category  string          `db:"category"`
	IsPro     bool            `db:"is_pro"`
	CreatedAt time.Time       `db:"created_at"`
}

var columns = []any{
	"id", "account_id", "transaction_date", "amount", "label", "category",
	"is_pro", "created_at",
}

func rowToTransaction(row *transactionRow) *Transaction {
	return &Transaction{
		ID:        row.ID,
		AccountID: row.AccountID,
		Date:      row.Date,
		Amount:    row.Amount,
		Label:     row.Label,
		Category:  row.Category,
		IsPro:     row.IsPro,
		CreatedAt: row.CreatedAt,
	}
}
