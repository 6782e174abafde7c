package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/networth-server/internal/classify"
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

func (w *Writer) FindByProviderRefForUpdate(ctx context.Context, userID uuid.UUID, providerAccountID string) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("provider_account_id").EQ(psql.Arg(providerAccountID))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

func (w *Writer) Insert(ctx context.Context, create *Create) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("accounts",
			"user_id", "company_id", "name", "provider", "provider_account_id",
			"balance", "currency", "account_type", "subtype", "usage",
		),
		im.Values(psql.Arg(
			create.UserID,
			null.FromPtr(create.CompanyID),
			create.Name,
			null.FromPtr(create.Provider),
			null.FromPtr(create.ProviderAccountID),
			create.Balance,
			create.Currency,
			create.Type.String(),
			subtypeToNull(create.Subtype),
			string(create.Usage),
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ApplySync writes balance, classification and last_sync in a single
// statement so a refreshed account is never observable half-updated.
func (w *Writer) ApplySync(ctx context.Context, id uuid.UUID, update *SyncUpdate) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("balance").ToArg(update.Balance),
		um.SetCol("currency").ToArg(update.Currency),
		um.SetCol("account_type").ToArg(update.Type.String()),
		um.SetCol("subtype").ToArg(subtypeToNull(update.Subtype)),
		um.SetCol("usage").ToArg(string(update.Usage)),
		um.SetCol("last_sync").ToArg(update.SyncedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdateBalance applies a manual balance edit.
func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

func subtypeToNull(s classify.Subtype) null.Val[string] {
	if s == classify.SubtypeNone {
		return null.FromPtr[string](nil)
	}
	return null.From(string(s))
}
