package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

var _ ITable = (*Reader)(nil)

func NewReader(db *sql.DB) *Reader {
	return &Reader{exec: bob.NewDB(db)}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*userRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUser(row), nil
}

func (r *Reader) List(ctx context.Context) ([]*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*userRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*User, len(rows))
	for i, row := range rows {
		result[i] = rowToUser(row)
	}
	return result, nil
}
