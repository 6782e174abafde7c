package actions

import (
	"context"

	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// BackfillTransactions imports provider transactions for one account,
// skipping rows whose natural key already exists. Re-running the same
// backfill never increases the row count.
type BackfillTransactions struct {
	Items []transaction.Create

	// Inserted counts rows actually written, set during Perform.
	Inserted int
}

var _ IAction = (*BackfillTransactions)(nil)

func (a *BackfillTransactions) Perform(ctx context.Context, writer TxWriter) error {
	for i := range a.Items {
		inserted, err := writer.Transactions().InsertIfAbsent(ctx, &a.Items[i])
		if err != nil {
			return err
		}
		if inserted {
			a.Inserted++
		}
	}
	return nil
}
