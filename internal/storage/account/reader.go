package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

var _ ITable = (*Reader)(nil)

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

func (r *Reader) FindByProviderRef(ctx context.Context, userID uuid.UUID, providerAccountID string) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("provider_account_id").EQ(psql.Arg(providerAccountID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

func (r *Reader) ListByUser(ctx context.Context, userID uuid.UUID, includeHidden bool) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	}
	if !includeHidden {
		queryMods = append(queryMods, sm.Where(psql.Quote("hidden").EQ(psql.Arg(false))))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*accountRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Account, len(rows))
	for i, row := range rows {
		result[i] = rowToAccount(row)
	}
	return result, nil
}

type staleRow struct {
	AccountID         uuid.UUID `db:"id"`
	UserID            uuid.UUID `db:"user_id"`
	Name              string    `db:"name"`
	ProviderAccountID string    `db:"provider_account_id"`
}

// ListStale returns provider-linked accounts whose last sync is missing
// or older than syncedBefore, or which have zero imported transactions.
// Both conditions independently mark an account stale.
func (r *Reader) ListStale(ctx context.Context, syncedBefore time.Time) ([]*Stale, error) {
	q := psql.Select(
		sm.Columns("id", "user_id", "name", "provider_account_id"),
		sm.From("accounts"),
		sm.Where(psql.Raw("provider_account_id IS NOT NULL")),
		sm.Where(psql.Raw(
			"(last_sync IS NULL OR last_sync < ? OR NOT EXISTS (SELECT 1 FROM transactions WHERE transactions.account_id = accounts.id))",
			syncedBefore,
		)),
		sm.OrderBy("user_id").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*staleRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Stale, len(rows))
	for i, row := range rows {
		result[i] = &Stale{
			AccountID:         row.AccountID,
			UserID:            row.UserID,
			Name:              row.Name,
			ProviderAccountID: row.ProviderAccountID,
		}
	}
	return result, nil
}
