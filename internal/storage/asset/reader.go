package asset

import (
	"context"
	"database/sql"

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

func (r *Reader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Asset, error) {
	q := psql.Select(
		sm.Columns(assetColumns...),
		sm.From("assets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*assetRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Asset, len(rows))
	for i, row := range rows {
		result[i] = rowToAsset(row)
	}
	return result, nil
}

func (r *Reader) ListEntries(ctx context.Context, assetID uuid.UUID) ([]*Entry, error) {
	q := psql.Select(
		sm.Columns(entryColumns...),
		sm.From("asset_entries"),
		sm.Where(psql.Quote("asset_id").EQ(psql.Arg(assetID))),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*entryRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Entry, len(rows))
	for i, row := range rows {
		result[i] = rowToEntry(row)
	}
	return result, nil
}
