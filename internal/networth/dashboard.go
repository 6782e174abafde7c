package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/classify"
	"github.com/carson-networks/networth-server/internal/storage/account"
)

// Dashboard is the live view of a user's current position: totals by
// category, the personal/professional split and per-account freshness.
// A user with no accounts or assets gets a zero dashboard, not an error.
type Dashboard struct {
	DisplayCurrency string
	Categories      map[string]decimal.Decimal
	Personal        decimal.Decimal
	Professional    decimal.Decimal
	Total           decimal.Decimal
	Unconvertible   int
	Accounts        []AccountStatus
	Assets          []AssetStatus
}

// AccountStatus reports an account's last-known balance with its
// staleness. Stale accounts keep reporting their balance; staleness is
// an indicator, not an error.
type AccountStatus struct {
	AccountID uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Currency  string
	Usage     classify.Usage
	LastSync  *time.Time
	Stale     bool
}

// AssetStatus reports an asset's valuation and, when a loan is linked,
// its net-of-loan value.
type AssetStatus struct {
	AssetID  uuid.UUID
	Name     string
	Category string
	Usage    classify.Usage
	Value    decimal.Decimal
	NetValue decimal.Decimal
}

// Dashboard builds the current view for one user.
func (e *Engine) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	u, err := e.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("dashboard: unknown user %s", userID)
	}

	displayCurrency := u.DisplayCurrency
	if displayCurrency == "" {
		displayCurrency = e.defaultCurrency
	}

	converter, err := e.loadConverter(ctx)
	if err != nil {
		return nil, err
	}

	totals, unconvertible, err := e.aggregate(ctx, converter, userID, displayCurrency)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		DisplayCurrency: displayCurrency,
		Categories:      totals,
		Personal:        decimal.Zero,
		Professional:    decimal.Zero,
		Total:           decimal.Zero,
		Unconvertible:   unconvertible,
	}
	for _, v := range totals {
		dashboard.Total = dashboard.Total.Add(v)
	}

	accounts, err := e.store.Accounts.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	staleCutoff := e.now().Add(-account.StaleAfter)
	for _, acc := range accounts {
		stale := acc.LastSync == nil || acc.LastSync.Before(staleCutoff)
		dashboard.Accounts = append(dashboard.Accounts, AccountStatus{
			AccountID: acc.ID,
			Name:      acc.Name,
			Balance:   acc.Balance,
			Currency:  acc.Currency,
			Usage:     acc.Usage,
			LastSync:  acc.LastSync,
			Stale:     stale,
		})
		if value, ok := converter.ToDisplay(acc.Balance, acc.Currency, displayCurrency); ok {
			dashboard.addUsage(acc.Usage, value)
		}
	}

	assets, err := e.store.Assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, as := range assets {
		usage := classify.ClassifyUsage(nil, as.CompanyID)
		value := as.Valuation()
		netValue := value
		if as.LinkedLoanAccountID != nil {
			loan, err := e.store.Accounts.FindByID(ctx, *as.LinkedLoanAccountID)
			if err != nil {
				return nil, err
			}
			if loan != nil {
				// Loan balances are stored signed; adding subtracts the
				// outstanding liability.
				if loanValue, ok := converter.ToDisplay(loan.Balance, loan.Currency, displayCurrency); ok {
					netValue = netValue.Add(loanValue)
				}
			}
		}
		dashboard.Assets = append(dashboard.Assets, AssetStatus{
			AssetID:  as.ID,
			Name:     as.Name,
			Category: CategoryForAsset(as.Type),
			Usage:    usage,
			Value:    value,
			NetValue: netValue,
		})
		dashboard.addUsage(usage, value)
	}

	return dashboard, nil
}

func (d *Dashboard) addUsage(usage classify.Usage, value decimal.Decimal) {
	if usage == classify.UsageProfessional {
		d.Professional = d.Professional.Add(value)
	} else {
		d.Personal = d.Personal.Add(value)
	}
}
