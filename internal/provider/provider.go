// Package provider talks to the external account-aggregation API. Every
// call is a blocking network call bounded by the client timeout; a
// failed call surfaces as an error the refresh orchestrator treats as a
// recoverable per-unit failure.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account is one account as reported by the provider. Type and Usage
// are optional in the payload and feed the classifier as-is.
type Account struct {
	ProviderAccountID string
	Name              string
	Type              *string
	Usage             *string
	Balance           decimal.Decimal
	Currency          string
}

// Transaction is one ledger line as reported by the provider.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Label    string
	Category string
}

// Client abstracts the aggregation provider API.
type Client interface {
	ListAccounts(ctx context.Context, token string) ([]Account, error)
	ListTransactions(ctx context.Context, token, providerAccountID string, limit int) ([]Transaction, error)
}

// StatusError reports a non-success provider response.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider: %s returned status %d", e.Endpoint, e.StatusCode)
}
