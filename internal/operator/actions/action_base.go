package actions

import (
	"context"

	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// TxWriter is the transactional surface actions run against. Implemented
// by storage.Writer; faked in tests.
type TxWriter interface {
	Accounts() account.IWriter
	Transactions() transaction.IWriter
	Commit() error
	Rollback() error
}

type IAction interface {
	Perform(ctx context.Context, writer TxWriter) error
}
