package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// Writer groups per-entity writers under one database transaction.
type Writer struct {
	tx           bob.Tx
	accounts     *account.Writer
	transactions *transaction.Writer
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		accounts:     account.NewWriter(tx),
		transactions: transaction.NewWriter(tx),
	}
}

func (w *Writer) Accounts() account.IWriter {
	return w.accounts
}

func (w *Writer) Transactions() transaction.IWriter {
	return w.transactions
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
