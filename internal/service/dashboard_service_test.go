package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/asset"
)

type fakeAssets struct {
	entries map[uuid.UUID][]*asset.Entry
}

func (f *fakeAssets) ListByUser(context.Context, uuid.UUID) ([]*asset.Asset, error) {
	return nil, nil
}

func (f *fakeAssets) ListEntries(_ context.Context, assetID uuid.UUID) ([]*asset.Entry, error) {
	return f.entries[assetID], nil
}

func entry(kind asset.EntryKind, amount string, frequency asset.Frequency) *asset.Entry {
	return &asset.Entry{
		ID:        uuid.Must(uuid.NewV4()),
		Kind:      kind,
		Amount:    decimal.RequireFromString(amount),
		Frequency: frequency,
	}
}

func TestMonthlyCashFlow(t *testing.T) {
	assetID := uuid.Must(uuid.NewV4())
	svc := NewDashboardService(&storage.Storage{
		Assets: &fakeAssets{entries: map[uuid.UUID][]*asset.Entry{
			assetID: {
				entry(asset.EntryRevenue, "800", asset.FrequencyMonthly),
				entry(asset.EntryCost, "1200", asset.FrequencyYearly),
				entry(asset.EntryCost, "50", asset.FrequencyMonthly),
			},
		}},
	}, nil)

	cashFlow, err := svc.monthlyCashFlow(context.Background(), assetID)
	assert.NoError(t, err)
	// 800 - 1200/12 - 50 = 650
	assert.True(t, cashFlow.Equal(decimal.RequireFromString("650")))
}

func TestMonthlyCashFlow_OneTimeExcluded(t *testing.T) {
	assetID := uuid.Must(uuid.NewV4())
	svc := NewDashboardService(&storage.Storage{
		Assets: &fakeAssets{entries: map[uuid.UUID][]*asset.Entry{
			assetID: {
				entry(asset.EntryCost, "15000", asset.FrequencyOneTime),
				entry(asset.EntryRevenue, "700", asset.FrequencyMonthly),
			},
		}},
	}, nil)

	cashFlow, err := svc.monthlyCashFlow(context.Background(), assetID)
	assert.NoError(t, err)
	assert.True(t, cashFlow.Equal(decimal.RequireFromString("700")))
}

func TestMonthlyCashFlow_NoEntries(t *testing.T) {
	svc := NewDashboardService(&storage.Storage{
		Assets: &fakeAssets{},
	}, nil)

	cashFlow, err := svc.monthlyCashFlow(context.Background(), uuid.Must(uuid.NewV4()))
	assert.NoError(t, err)
	assert.True(t, cashFlow.IsZero())
}
