package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/classify"
)

// StaleAfter is the age past which a synced account counts as stale.
const StaleAfter = 7 * 24 * time.Hour

// Account represents a bank, investment, loan, crypto or manual holding.
// Balance is signed and kept in the account's native currency.
type Account struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	CompanyID         *uuid.UUID
	Name              string
	Provider          *string
	ProviderAccountID *string
	Balance           decimal.Decimal
	Currency          string
	Type              classify.Type
	Subtype           classify.Subtype
	Usage             classify.Usage
	Hidden            bool
	LastSync          *time.Time
	CreatedAt         time.Time
}

// Create is the input for inserting a new account.
type Create struct {
	UserID            uuid.UUID
	CompanyID         *uuid.UUID
	Name              string
	Provider          *string
	ProviderAccountID *string
	Balance           decimal.Decimal
	Currency          string
	Type              classify.Type
	Subtype           classify.Subtype
	Usage             classify.Usage
}

// SyncUpdate carries everything a provider refresh applies to an
// account. The whole update is written in one statement so readers never
// observe a partially refreshed account.
type SyncUpdate struct {
	Name     string
	Balance  decimal.Decimal
	Currency string
	Type     classify.Type
	Subtype  classify.Subtype
	Usage    classify.Usage
	SyncedAt time.Time
}

// Stale identifies a provider-linked account whose local data is
// outdated, together with its owner.
type Stale struct {
	AccountID         uuid.UUID
	UserID            uuid.UUID
	Name              string
	ProviderAccountID string
}

// ITable defines read-side account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByProviderRef(ctx context.Context, userID uuid.UUID, providerAccountID string) (*Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeHidden bool) ([]*Account, error)
	ListStale(ctx context.Context, syncedBefore time.Time) ([]*Stale, error)
}

// IWriter defines transactional account mutations used by operator
// actions.
type IWriter interface {
	FindByProviderRefForUpdate(ctx context.Context, userID uuid.UUID, providerAccountID string) (*Account, error)
	Insert(ctx context.Context, create *Create) (uuid.UUID, error)
	ApplySync(ctx context.Context, id uuid.UUID, update *SyncUpdate) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// accountRow is the scan target matching the accounts table columns.
type accountRow struct {
	ID                uuid.UUID           `db:"id"`
	UserID            uuid.UUID           `db:"user_id"`
	CompanyID         null.Val[uuid.UUID] `db:"company_id"`
	Name              string              `db:"name"`
	Provider          null.Val[string]    `db:"provider"`
	ProviderAccountID null.Val[string]    `db:"provider_account_id"`
	Balance           decimal.Decimal     `db:"balance"`
	Currency          string              `db:"currency"`
	AccountType       string              `db:"account_type"`
	Subtype           null.Val[string]    `db:"subtype"`
	Usage             string              `db:"usage"`
	Hidden            bool                `db:"hidden"`
	LastSync          null.Val[time.Time] `db:"last_sync"`
	CreatedAt         time.Time           `db:"created_at"`
}

var columns = []any{
	"id", "user_id", "company_id", "name", "provider", "provider_account_id",
	"balance", "currency", "account_type", "subtype", "usage", "hidden",
	"last_sync", "created_at",
}

func rowToAccount(row *accountRow) *Account {
	return &Account{
		ID:                row.ID,
		UserID:            row.UserID,
		CompanyID:         row.CompanyID.Ptr(),
		Name:              row.Name,
		Provider:          row.Provider.Ptr(),
		ProviderAccountID: row.ProviderAccountID.Ptr(),
		Balance:           row.Balance,
		Currency:          row.Currency,
		Type:              classify.ParseType(row.AccountType),
		Subtype:           classify.Subtype(row.Subtype.GetOrZero()),
		Usage:             classify.Usage(row.Usage),
		Hidden:            row.Hidden,
		LastSync:          row.LastSync.Ptr(),
		CreatedAt:         row.CreatedAt,
	}
}
