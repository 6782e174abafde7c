package bankconnection

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
)

// Status of a connection to the aggregation provider.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusError   Status = "error"
)

// Connection is a per-user credential/session with the aggregation
// provider.
type Connection struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Provider  string
	Token     string
	Status    Status
	LastSync  *time.Time
	CreatedAt time.Time
}

// ITable defines bank connection storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*Connection, error)
	UpdateLastSync(ctx context.Context, id uuid.UUID, syncedAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type connectionRow struct {
	ID        uuid.UUID           `db:"id"`
	UserID    uuid.UUID           `db:"user_id"`
	Provider  string              `db:"provider"`
	Token     string              `db:"token"`
	Status    string              `db:"status"`
	LastSync  null.Val[time.Time] `db:"last_sync"`
	CreatedAt time.Time           `db:"created_at"`
}

var columns = []any{"id", "user_id", "provider", "token", "status", "last_sync", "created_at"}

func rowToConnection(row *connectionRow) *Connection {
	return &Connection{
		ID:        row.ID,
		UserID:    row.UserID,
		Provider:  row.Provider,
		Token:     row.Token,
		Status:    Status(row.Status),
		LastSync:  row.LastSync.Ptr(),
		CreatedAt: row.CreatedAt,
	}
}
