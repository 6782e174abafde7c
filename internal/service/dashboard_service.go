package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/networth"
	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/asset"
)

var twelve = decimal.NewFromInt(12)

// DashboardService handles current-position business logic.
type DashboardService struct {
	storage *storage.Storage
	engine  *networth.Engine
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store *storage.Storage, engine *networth.Engine) *DashboardService {
	return &DashboardService{storage: store, engine: engine}
}

// GetDashboard builds the current view for one user, enriching asset
// lines with their recurring monthly cash flow.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	view, err := s.engine.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		DisplayCurrency: view.DisplayCurrency,
		Categories:      view.Categories,
		Personal:        view.Personal,
		Professional:    view.Professional,
		Total:           view.Total,
		Unconvertible:   view.Unconvertible,
	}

	for _, acc := range view.Accounts {
		dashboard.Accounts = append(dashboard.Accounts, DashboardAccount{
			AccountID: acc.AccountID,
			Name:      acc.Name,
			Balance:   acc.Balance,
			Currency:  acc.Currency,
			Usage:     string(acc.Usage),
			LastSync:  acc.LastSync,
			Stale:     acc.Stale,
		})
	}

	for _, as := range view.Assets {
		cashFlow, err := s.monthlyCashFlow(ctx, as.AssetID)
		if err != nil {
			return nil, err
		}
		dashboard.Assets = append(dashboard.Assets, DashboardAsset{
			AssetID:         as.AssetID,
			Name:            as.Name,
			Category:        as.Category,
			Usage:           string(as.Usage),
			Value:           as.Value,
			NetValue:        as.NetValue,
			MonthlyCashFlow: cashFlow,
		})
	}

	return dashboard, nil
}

// monthlyCashFlow normalizes an asset's recurring entries to a monthly
// figure: monthly entries as-is, yearly entries divided by twelve,
// one-time entries excluded. Revenues add, costs subtract.
func (s *DashboardService) monthlyCashFlow(ctx context.Context, assetID uuid.UUID) (decimal.Decimal, error) {
	entries, err := s.storage.Assets.ListEntries(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, entry := range entries {
		var monthly decimal.Decimal
		switch entry.Frequency {
		case asset.FrequencyMonthly:
			monthly = entry.Amount
		case asset.FrequencyYearly:
			monthly = entry.Amount.Div(twelve)
		default:
			continue
		}
		if entry.Kind == asset.EntryCost {
			monthly = monthly.Neg()
		}
		total = total.Add(monthly)
	}
	return total, nil
}
