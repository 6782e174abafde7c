package asset

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type is the asset category.
type Type string

const (
	TypeRealEstate Type = "real_estate"
	TypeVehicle    Type = "vehicle"
	TypeValuable   Type = "valuable"
	TypeOther      Type = "other"
)

// EntryKind distinguishes recurring cost and revenue lines.
type EntryKind string

const (
	EntryCost    EntryKind = "cost"
	EntryRevenue EntryKind = "revenue"
)

// Frequency of a cost/revenue entry.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyOneTime Frequency = "one_time"
)

// Asset is a non-account holding. CurrentValue is nullable and falls
// back to PurchasePrice for valuation.
type Asset struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	CompanyID           *uuid.UUID
	Name                string
	Type                Type
	PurchasePrice       decimal.Decimal
	CurrentValue        *decimal.Decimal
	LinkedLoanAccountID *uuid.UUID
	CreatedAt           time.Time
}

// Valuation is the asset's contribution to totals:
// current_value if present, else purchase_price. A current value of
// exactly zero is honored as zero.
func (a *Asset) Valuation() decimal.Decimal {
	if a.CurrentValue != nil {
		return *a.CurrentValue
	}
	return a.PurchasePrice
}

// Entry is one recurring cost or revenue line under an asset. Entries
// are removed with their asset (cascade).
type Entry struct {
	ID        uuid.UUID
	AssetID   uuid.UUID
	Kind      EntryKind
	Label     string
	Amount    decimal.Decimal
	Frequency Frequency
}

// ITable defines asset storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITable interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Asset, error)
	ListEntries(ctx context.Context, assetID uuid.UUID) ([]*Entry, error)
}

type assetRow struct {
	ID                  uuid.UUID                 `db:"id"`
	UserID              uuid.UUID                 `db:"user_id"`
	CompanyID           null.Val[uuid.UUID]       `db:"company_id"`
	Name                string                    `db:"name"`
	AssetType           string                    `db:"asset_type"`
	PurchasePrice       decimal.Decimal           `db:"purchase_price"`
	CurrentValue        null.Val[decimal.Decimal] `db:"current_value"`
	LinkedLoanAccountID null.Val[uuid.UUID]       `db:"linked_loan_account_id"`
	CreatedAt           time.Time                 `db:"created_at"`
}

var assetColumns = []any{
	"id", "user_id", "company_id", "name", "asset_type", "purchase_price",
	"current_value", "linked_loan_account_id", "created_at",
}

type entryRow struct {
	ID        uuid.UUID       `db:"id"`
	AssetID   uuid.UUID       `db:"asset_id"`
	Kind      string          `db:"kind"`
	Label     string          `db:"label"`
	Amount    decimal.Decimal `db:"amount"`
	Frequency string          `db:"frequency"`
}

var entryColumns = []any{"id", "asset_id", "kind", "label", "amount", "frequency"}

func rowToAsset(row *assetRow) *Asset {
	return &Asset{
		ID:                  row.ID,
		UserID:              row.UserID,
		CompanyID:           row.CompanyID.Ptr(),
		Name:                row.Name,
		Type:                Type(row.AssetType),
		PurchasePrice:       row.PurchasePrice,
		CurrentValue:        row.CurrentValue.Ptr(),
		LinkedLoanAccountID: row.LinkedLoanAccountID.Ptr(),
		CreatedAt:           row.CreatedAt,
	}
}

func rowToEntry(row *entryRow) *Entry {
	return &Entry{
		ID:        row.ID,
		AssetID:   row.AssetID,
		Kind:      EntryKind(row.Kind),
		Label:     row.Label,
		Amount:    row.Amount,
		Frequency: Frequency(row.Frequency),
	}
}
