package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// AdjustBalance applies a manual balance edit to one account.
type AdjustBalance struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Balance   decimal.Decimal
}

var _ IAction = (*AdjustBalance)(nil)

func (a *AdjustBalance) Perform(ctx context.Context, writer TxWriter) error {
	if a.AccountID == uuid.Nil {
		return errors.New("adjust balance: missing account id")
	}
	return writer.Accounts().UpdateBalance(ctx, a.AccountID, a.Balance)
}
