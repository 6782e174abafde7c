package bankconnection

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(db *sql.DB) *Table {
	return &Table{exec: bob.NewDB(db)}
}

// FindActiveByUser returns the user's active connection, or nil when the
// user has none. Users with several connections get the most recent.
func (t *Table) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*Connection, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("bank_connections"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("status").EQ(psql.Arg(string(StatusActive)))),
		sm.OrderBy("created_at").Desc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*connectionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToConnection(row), nil
}

func (t *Table) UpdateLastSync(ctx context.Context, id uuid.UUID, syncedAt time.Time) error {
	q := psql.Update(
		um.Table("bank_connections"),
		um.SetCol("last_sync").ToArg(syncedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *Table) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	q := psql.Update(
		um.Table("bank_connections"),
		um.SetCol("status").ToArg(string(status)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
