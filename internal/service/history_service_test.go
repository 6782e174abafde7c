package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/networth-server/internal/history"
	"github.com/carson-networks/networth-server/internal/networth"
	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/snapshot"
)

type fakeSnapshots struct {
	lastCategory string
	rows         []*snapshot.Snapshot
}

func (f *fakeSnapshots) Upsert(context.Context, *snapshot.Upsert) error {
	return nil
}

func (f *fakeSnapshots) ListRange(_ context.Context, _ uuid.UUID, category string, _, _ time.Time) ([]*snapshot.Snapshot, error) {
	f.lastCategory = category
	return f.rows, nil
}

func TestGetHistory_DefaultsToTotal(t *testing.T) {
	snapshots := &fakeSnapshots{}
	svc := NewHistoryService(history.NewReader(&storage.Storage{Snapshots: snapshots}))

	out, err := svc.GetHistory(context.Background(), uuid.Must(uuid.NewV4()), HistoryFilter{})
	assert.NoError(t, err)
	assert.Equal(t, networth.CategoryTotal, out.Category)
	assert.Equal(t, networth.CategoryTotal, snapshots.lastCategory)
}

func TestGetHistory_UnknownCategoryRejected(t *testing.T) {
	svc := NewHistoryService(history.NewReader(&storage.Storage{Snapshots: &fakeSnapshots{}}))

	_, err := svc.GetHistory(context.Background(), uuid.Must(uuid.NewV4()), HistoryFilter{Category: "yachts"})
	assert.Error(t, err)
}

func TestGetHistory_PercentChange(t *testing.T) {
	snapshots := &fakeSnapshots{rows: []*snapshot.Snapshot{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Category: networth.CategoryTotal, Value: decimal.RequireFromString("200")},
		{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Category: networth.CategoryTotal, Value: decimal.RequireFromString("300")},
	}}
	svc := NewHistoryService(history.NewReader(&storage.Storage{Snapshots: snapshots}))

	out, err := svc.GetHistory(context.Background(), uuid.Must(uuid.NewV4()), HistoryFilter{})
	assert.NoError(t, err)
	assert.Len(t, out.Points, 2)
	assert.NotNil(t, out.Baseline)
	assert.NotNil(t, out.PercentChange)
	assert.True(t, out.PercentChange.Equal(decimal.RequireFromString("50")))
}
