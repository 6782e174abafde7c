package snapshot

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

// Table provides access to the snapshots table. Upserts run as single
// statements so the at-most-one-row-per-key invariant holds under
// concurrent runs.
type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(db *sql.DB) *Table {
	return &Table{exec: bob.NewDB(db)}
}

// Upsert writes the value for (date, user, category), replacing any
// prior value for the same key.
func (t *Table) Upsert(ctx context.Context, up *Upsert) error {
	q := psql.Insert(
		im.Into("snapshots", "snapshot_date", "user_id", "category", "total_value"),
		im.Values(psql.Arg(dateOnly(up.Date), up.UserID, up.Category, up.Value)),
		im.OnConflict("snapshot_date", "user_id", "category").DoUpdate(
			im.SetExcluded("total_value"),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// ListRange returns snapshots for one user and category, ascending by
// date, bounds inclusive.
func (t *Table) ListRange(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) ([]*Snapshot, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("snapshots"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category").EQ(psql.Arg(category))),
		sm.Where(psql.Quote("snapshot_date").GTE(psql.Arg(dateOnly(from)))),
		sm.Where(psql.Quote("snapshot_date").LTE(psql.Arg(dateOnly(to)))),
		sm.OrderBy("snapshot_date").Asc(),
	)

	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*snapshotRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Snapshot, len(rows))
	for i, row := range rows {
		result[i] = rowToSnapshot(row)
	}
	return result, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
