package rate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one exchange rate row: multiply a source-currency amount by
// Rate to get the target-currency amount.
type Rate struct {
	Source    string
	Target    string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}

// ITable defines exchange rate storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	ListAll(ctx context.Context) ([]*Rate, error)
}

type rateRow struct {
	Source    string          `db:"source"`
	Target    string          `db:"target"`
	Rate      decimal.Decimal `db:"rate"`
	UpdatedAt time.Time       `db:"updated_at"`
}

var columns = []any{"source", "target", "rate", "updated_at"}
