package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Dashboard is the current-position view in the service layer.
type Dashboard struct {
	DisplayCurrency string
	Categories      map[string]decimal.Decimal
	Personal        decimal.Decimal
	Professional    decimal.Decimal
	Total           decimal.Decimal
	Unconvertible   int
	Accounts        []DashboardAccount
	Assets          []DashboardAsset
}

// DashboardAccount is one account line with staleness.
type DashboardAccount struct {
	AccountID uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Currency  string
	Usage     string
	LastSync  *time.Time
	Stale     bool
}

// DashboardAsset is one asset line. MonthlyCashFlow is the recurring
// revenue minus cost figure; one-time entries do not contribute.
type DashboardAsset struct {
	AssetID         uuid.UUID
	Name            string
	Category        string
	Usage           string
	Value           decimal.Decimal
	NetValue        decimal.Decimal
	MonthlyCashFlow decimal.Decimal
}
