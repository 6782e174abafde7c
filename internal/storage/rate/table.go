package rate

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Table struct {
	exec bob.Executor
}

var _ ITable = (*Table)(nil)

func NewTable(db *sql.DB) *Table {
	return &Table{exec: bob.NewDB(db)}
}

func (t *Table) ListAll(ctx context.Context) ([]*Rate, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("exchange_rates"),
	)

	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*rateRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Rate, len(rows))
	for i, row := range rows {
		result[i] = &Rate{
			Source:    row.Source,
			Target:    row.Target,
			Rate:      row.Rate,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return result, nil
}
