package transaction

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

var _ IWriter = (*Writer)(nil)

// InsertIfAbsent inserts a transaction unless a row with the same
// natural key (account, date, amount, label) already exists. The
// conflict is resolved inside the database so re-running a backfill
// never duplicates rows. Reports whether a row was actually inserted.
func (w *Writer) InsertIfAbsent(ctx context.Context, create *Create) (bool, error) {
	q := psql.Insert(
		im.Into("transactions",
			"account_id", "transaction_date", "amount", "label", "category", "is_pro",
		),
		im.Values(psql.Arg(
			create.AccountID,
			create.Date,
			create.Amount,
			create.Label,
			create.Category,
			create.IsPro,
		)),
		im.OnConflict("account_id", "transaction_date", "amount", "label").DoNothing(),
	)

	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
