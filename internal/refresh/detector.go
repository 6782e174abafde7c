package refresh

import (
	"context"
	"time"

	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/account"
)

// Detector finds provider-linked accounts whose local data is outdated:
// never synced, synced too long ago, or holding zero imported
// transactions. A freshly-synced account with no transactions is still
// stale. Read-only.
type Detector struct {
	store *storage.Storage
	now   func() time.Time
}

func NewDetector(store *storage.Storage) *Detector {
	return &Detector{
		store: store,
		now:   time.Now,
	}
}

func (d *Detector) FindStaleAccounts(ctx context.Context) ([]*account.Stale, error) {
	return d.store.Accounts.ListStale(ctx, d.now().Add(-account.StaleAfter))
}
