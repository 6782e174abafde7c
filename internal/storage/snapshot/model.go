package snapshot

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Snapshot is one persisted (date, user, category) total. At most one
// row exists per key; the same day's re-run replaces the value.
type Snapshot struct {
	ID       uuid.UUID
	Date     time.Time
	UserID   uuid.UUID
	Category string
	Value    decimal.Decimal
}

// Upsert is the input for writing a snapshot point.
type Upsert struct {
	Date     time.Time
	UserID   uuid.UUID
	Category string
	Value    decimal.Decimal
}

// ITable defines snapshot storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	Upsert(ctx context.Context, up *Upsert) error
	ListRange(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) ([]*Snapshot, error)
}

type snapshotRow struct {
	ID       uuid.UUID       `db:"id"`
	Date     time.Time       `db:"snapshot_date"`
	UserID   uuid.UUID       `db:"user_id"`
	Category string          `db:"category"`
	Value    decimal.Decimal `db:"total_value"`
}

var columns = []any{"id", "snapshot_date", "user_id", "category", "total_value"}

func rowToSnapshot(row *snapshotRow) *Snapshot {
	return &Snapshot{
		ID:       row.ID,
		Date:     row.Date,
		UserID:   row.UserID,
		Category: row.Category,
		Value:    row.Value,
	}
}
