// Package refresh reconciles local account state against the external
// aggregation provider. Failures are scoped to the smallest unit: one
// account's transaction backfill, or one user's whole refresh when the
// account-list call itself fails. A failed unit is counted and logged;
// the batch always continues.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/networth-server/internal/classify"
	"github.com/carson-networks/networth-server/internal/operator/actions"
	"github.com/carson-networks/networth-server/internal/provider"
	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/bankconnection"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// Pipeline applies write actions transactionally. Satisfied by
// operator.OperatorDelegator.
type Pipeline interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Summary reports one orchestrator run.
type Summary struct {
	StaleAccounts        int
	UsersRefreshed       int
	UsersFailed          int
	AccountsUpdated      int
	TransactionsInserted int
}

func (s Summary) String() string {
	return fmt.Sprintf("stale=%d usersRefreshed=%d usersFailed=%d accountsUpdated=%d transactionsInserted=%d",
		s.StaleAccounts, s.UsersRefreshed, s.UsersFailed, s.AccountsUpdated, s.TransactionsInserted)
}

// Orchestrator drives the per-user reconciliation loop.
type Orchestrator struct {
	store      *storage.Storage
	provider   provider.Client
	pipeline   Pipeline
	detector   *Detector
	logger     *logrus.Logger
	fetchLimit int
	now        func() time.Time
}

func NewOrchestrator(store *storage.Storage, client provider.Client, pipeline Pipeline, logger *logrus.Logger, fetchLimit int) *Orchestrator {
	return &Orchestrator{
		store:      store,
		provider:   client,
		pipeline:   pipeline,
		detector:   NewDetector(store),
		logger:     logger,
		fetchLimit: fetchLimit,
		now:        time.Now,
	}
}

// Run refreshes every user owning at least one stale account. There is
// no in-run retry: the next scheduled run retries whatever stayed stale.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	stale, err := o.detector.FindStaleAccounts(ctx)
	if err != nil {
		return summary, fmt.Errorf("find stale accounts: %w", err)
	}
	summary.StaleAccounts = len(stale)
	if len(stale) == 0 {
		o.logger.Info("RefreshOrchestrator.Run.nothing stale")
		return summary, nil
	}

	userIDs := staleUserIDs(stale)
	for _, userID := range userIDs {
		// Abort only between user units.
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := o.refreshUser(ctx, userID)
		if err != nil {
			summary.UsersFailed++
			o.logger.WithError(err).WithField("userID", userID).Error("RefreshOrchestrator.Run.user failed")
			continue
		}
		summary.UsersRefreshed++
		summary.AccountsUpdated += result.accountsUpdated
		summary.TransactionsInserted += result.transactionsInserted
	}

	o.logger.WithFields(logrus.Fields{
		"staleAccounts":        summary.StaleAccounts,
		"usersRefreshed":       summary.UsersRefreshed,
		"usersFailed":          summary.UsersFailed,
		"accountsUpdated":      summary.AccountsUpdated,
		"transactionsInserted": summary.TransactionsInserted,
	}).Info("RefreshOrchestrator.Run.Complete")

	return summary, nil
}

// RefreshConnection refreshes one user on demand, with the same
// semantics as the user's unit inside a batch run.
func (o *Orchestrator) RefreshConnection(ctx context.Context, userID uuid.UUID) error {
	_, err := o.refreshUser(ctx, userID)
	return err
}

// RefreshAccount refreshes a single account on demand. The provider has
// no single-account read, so this lists the user's provider accounts
// and applies only the requested one.
func (o *Orchestrator) RefreshAccount(ctx context.Context, accountID uuid.UUID) error {
	acc, err := o.store.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return fmt.Errorf("refresh account: unknown account %s", accountID)
	}
	if acc.ProviderAccountID == nil {
		return errors.New("refresh account: account is not provider-linked")
	}

	conn, err := o.activeConnection(ctx, acc.UserID)
	if err != nil {
		return err
	}

	providerAccounts, err := o.provider.ListAccounts(ctx, conn.Token)
	if err != nil {
		return fmt.Errorf("provider list accounts: %w", err)
	}

	for _, pa := range providerAccounts {
		if pa.ProviderAccountID != *acc.ProviderAccountID {
			continue
		}
		_, _, err := o.applyProviderAccount(ctx, acc.UserID, conn, pa)
		return err
	}
	return fmt.Errorf("refresh account: provider no longer reports %s", *acc.ProviderAccountID)
}

type userResult struct {
	accountsUpdated      int
	transactionsInserted int
}

func (o *Orchestrator) refreshUser(ctx context.Context, userID uuid.UUID) (userResult, error) {
	var result userResult

	conn, err := o.activeConnection(ctx, userID)
	if err != nil {
		return result, err
	}

	// A failing account-list call fails the whole user: no partial
	// account updates are attempted.
	providerAccounts, err := o.provider.ListAccounts(ctx, conn.Token)
	if err != nil {
		return result, fmt.Errorf("provider list accounts: %w", err)
	}

	for _, pa := range providerAccounts {
		updated, inserted, err := o.applyProviderAccount(ctx, userID, conn, pa)
		if err != nil {
			o.logger.WithError(err).WithFields(logrus.Fields{
				"userID":            userID,
				"providerAccountID": pa.ProviderAccountID,
			}).Error("RefreshOrchestrator.refreshUser.account update failed")
			continue
		}
		if updated {
			result.accountsUpdated++
		}
		result.transactionsInserted += inserted
	}

	if err := o.store.Connections.UpdateLastSync(ctx, conn.ID, o.now()); err != nil {
		o.logger.WithError(err).WithField("connectionID", conn.ID).Error("RefreshOrchestrator.refreshUser.connection last_sync")
	}

	return result, nil
}

// applyProviderAccount classifies and applies one provider account's
// state, then backfills transactions when the local account has none.
// Backfill failures are tolerated silently for that account: the balance
// update still stands.
func (o *Orchestrator) applyProviderAccount(ctx context.Context, userID uuid.UUID, conn *bankconnection.Connection, pa provider.Account) (updated bool, inserted int, err error) {
	local, err := o.store.Accounts.FindByProviderRef(ctx, userID, pa.ProviderAccountID)
	if err != nil {
		return false, 0, err
	}

	var companyID *uuid.UUID
	if local != nil {
		companyID = local.CompanyID
	}

	accountType := classify.ClassifyType(pa.Type, pa.Name)
	update := &actions.UpdateAccountState{
		UserID:            userID,
		CompanyID:         companyID,
		Provider:          conn.Provider,
		ProviderAccountID: pa.ProviderAccountID,
		Name:              pa.Name,
		Balance:           pa.Balance,
		Currency:          pa.Currency,
		Type:              accountType,
		Subtype:           classify.ClassifySubtype(accountType, &conn.Provider, pa.Name),
		Usage:             classify.ClassifyUsage(pa.Usage, companyID),
		SyncedAt:          o.now(),
	}
	if err := o.pipeline.Process(ctx, update); err != nil {
		return false, 0, err
	}

	count, err := o.store.Transactions.CountByAccount(ctx, update.AccountID)
	if err != nil {
		return true, 0, err
	}
	if count > 0 {
		return true, 0, nil
	}

	inserted, backfillErr := o.backfill(ctx, conn.Token, update.AccountID, pa)
	if backfillErr != nil {
		o.logger.WithError(backfillErr).WithFields(logrus.Fields{
			"accountID":         update.AccountID,
			"providerAccountID": pa.ProviderAccountID,
		}).Debug("RefreshOrchestrator.applyProviderAccount.backfill skipped")
		return true, 0, nil
	}
	return true, inserted, nil
}

func (o *Orchestrator) backfill(ctx context.Context, token string, accountID uuid.UUID, pa provider.Account) (int, error) {
	providerTransactions, err := o.provider.ListTransactions(ctx, token, pa.ProviderAccountID, o.fetchLimit)
	if err != nil {
		return 0, err
	}
	if len(providerTransactions) == 0 {
		return 0, nil
	}

	items := make([]transaction.Create, len(providerTransactions))
	for i, pt := range providerTransactions {
		items[i] = transaction.Create{
			AccountID: accountID,
			Date:      pt.Date,
			Amount:    pt.Amount,
			Label:     pt.Label,
			Category:  pt.Category,
		}
	}

	action := &actions.BackfillTransactions{Items: items}
	if err := o.pipeline.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.Inserted, nil
}

func (o *Orchestrator) activeConnection(ctx context.Context, userID uuid.UUID) (*bankconnection.Connection, error) {
	conn, err := o.store.Connections.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, fmt.Errorf("no active provider connection for user %s", userID)
	}
	return conn, nil
}

// staleUserIDs deduplicates owners preserving detector order.
func staleUserIDs(stale []*account.Stale) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(stale))
	ids := make([]uuid.UUID, 0, len(stale))
	for _, s := range stale {
		if _, ok := seen[s.UserID]; ok {
			continue
		}
		seen[s.UserID] = struct{}{}
		ids = append(ids, s.UserID)
	}
	return ids
}
