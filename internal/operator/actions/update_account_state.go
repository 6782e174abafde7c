package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/networth-server/internal/classify"
	"github.com/carson-networks/networth-server/internal/storage/account"
)

// UpdateAccountState applies one provider account's refreshed state:
// balance, classification and last_sync land in a single transaction so
// readers never see a half-updated account. Creates the local account
// when the provider reports one we have not seen before.
type UpdateAccountState struct {
	UserID            uuid.UUID
	CompanyID         *uuid.UUID
	Provider          string
	ProviderAccountID string
	Name              string
	Balance           decimal.Decimal
	Currency          string
	Type              classify.Type
	Subtype           classify.Subtype
	Usage             classify.Usage
	SyncedAt          time.Time

	// Resolved during Perform.
	AccountID uuid.UUID
	Created   bool
}

var _ IAction = (*UpdateAccountState)(nil)

func (a *UpdateAccountState) Perform(ctx context.Context, writer TxWriter) error {
	existing, err := writer.Accounts().FindByProviderRefForUpdate(ctx, a.UserID, a.ProviderAccountID)
	if err != nil {
		return err
	}

	if existing == nil {
		id, err := writer.Accounts().Insert(ctx, &account.Create{
			UserID:            a.UserID,
			CompanyID:         a.CompanyID,
			Name:              a.Name,
			Provider:          &a.Provider,
			ProviderAccountID: &a.ProviderAccountID,
			Balance:           a.Balance,
			Currency:          a.Currency,
			Type:              a.Type,
			Subtype:           a.Subtype,
			Usage:             a.Usage,
		})
		if err != nil {
			return err
		}
		a.AccountID = id
		a.Created = true
	} else {
		a.AccountID = existing.ID
	}

	return writer.Accounts().ApplySync(ctx, a.AccountID, &account.SyncUpdate{
		Name:     a.Name,
		Balance:  a.Balance,
		Currency: a.Currency,
		Type:     a.Type,
		Subtype:  a.Subtype,
		Usage:    a.Usage,
		SyncedAt: a.SyncedAt,
	})
}
