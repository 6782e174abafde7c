package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is the identity anchor owning every other entity.
type User struct {
	ID              uuid.UUID
	Email           string
	DisplayCurrency string
	CreatedAt       time.Time
}

// ITable defines user storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type userRow struct {
	ID              uuid.UUID `db:"id"`
	Email           string    `db:"email"`
	DisplayCurrency string    `db:"display_currency"`
	CreatedAt       time.Time `db:"created_at"`
}

var columns = []any{"id", "email", "display_currency", "created_at"}

func rowToUser(row *userRow) *User {
	return &User{
		ID:              row.ID,
		Email:           row.Email,
		DisplayCurrency: row.DisplayCurrency,
		CreatedAt:       row.CreatedAt,
	}
}
