// Package networth aggregates account balances and asset valuations
// into per-category totals: daily persisted snapshots and the live
// dashboard view.
package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/networth-server/internal/currency"
	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/snapshot"
	"github.com/carson-networks/networth-server/internal/storage/user"
)

// Report summarizes one snapshot run. Partial success is the expected
// steady state: a failing user is counted and logged, never aborts the
// batch.
type Report struct {
	SnapshotsWritten int
	UsersProcessed   int
	UsersFailed      int
}

func (r Report) String() string {
	return fmt.Sprintf("snapshots=%d usersProcessed=%d usersFailed=%d",
		r.SnapshotsWritten, r.UsersProcessed, r.UsersFailed)
}

// Engine computes and persists net-worth snapshots.
type Engine struct {
	store           *storage.Storage
	logger          *logrus.Logger
	defaultCurrency string
	now             func() time.Time
}

func NewEngine(store *storage.Storage, logger *logrus.Logger, defaultCurrency string) *Engine {
	return &Engine{
		store:           store,
		logger:          logger,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// Run snapshots every user once. Designed for a daily cadence and safe
// to re-run for the same day: snapshot writes replace on conflict.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	var report Report

	users, err := e.store.Users.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}

	converter, err := e.loadConverter(ctx)
	if err != nil {
		return report, fmt.Errorf("load rates: %w", err)
	}

	for _, u := range users {
		// Abort only between user units; rows already written stay valid.
		if err := ctx.Err(); err != nil {
			return report, err
		}

		written, err := e.snapshotUser(ctx, converter, u)
		if err != nil {
			report.UsersFailed++
			e.logger.WithError(err).WithField("userID", u.ID).Error("SnapshotEngine.Run.user failed")
			continue
		}
		report.UsersProcessed++
		report.SnapshotsWritten += written
	}

	e.logger.WithFields(logrus.Fields{
		"snapshotsWritten": report.SnapshotsWritten,
		"usersProcessed":   report.UsersProcessed,
		"usersFailed":      report.UsersFailed,
	}).Info("SnapshotEngine.Run.Complete")

	return report, nil
}

func (e *Engine) snapshotUser(ctx context.Context, converter *currency.Converter, u *user.User) (int, error) {
	displayCurrency := u.DisplayCurrency
	if displayCurrency == "" {
		displayCurrency = e.defaultCurrency
	}

	totals, _, err := e.aggregate(ctx, converter, u.ID, displayCurrency)
	if err != nil {
		return 0, err
	}

	total := decimal.Zero
	for _, v := range totals {
		total = total.Add(v)
	}

	today := e.now()
	written := 0
	for category, value := range totals {
		if value.IsZero() {
			continue
		}
		up := &snapshot.Upsert{Date: today, UserID: u.ID, Category: category, Value: value}
		if err := e.store.Snapshots.Upsert(ctx, up); err != nil {
			return written, fmt.Errorf("upsert %s: %w", category, err)
		}
		written++
	}

	// The total row is always written, zero included, so "no net worth"
	// is recorded explicitly.
	up := &snapshot.Upsert{Date: today, UserID: u.ID, Category: CategoryTotal, Value: total}
	if err := e.store.Snapshots.Upsert(ctx, up); err != nil {
		return written, fmt.Errorf("upsert total: %w", err)
	}
	written++

	return written, nil
}

// aggregate buckets the user's non-hidden accounts and assets into
// categories, converted to the display currency. Unconvertible amounts
// are excluded from totals and counted, never guessed.
func (e *Engine) aggregate(ctx context.Context, converter *currency.Converter, userID uuid.UUID, displayCurrency string) (map[string]decimal.Decimal, int, error) {
	accounts, err := e.store.Accounts.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	assets, err := e.store.Assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	unconvertible := 0

	for _, acc := range accounts {
		value, ok := converter.ToDisplay(acc.Balance, acc.Currency, displayCurrency)
		if !ok {
			unconvertible++
			e.logger.WithFields(logrus.Fields{
				"accountID": acc.ID,
				"currency":  acc.Currency,
				"display":   displayCurrency,
			}).Warn("SnapshotEngine.aggregate.unconvertible balance excluded")
			continue
		}
		category := CategoryForType(acc.Type)
		totals[category] = totals[category].Add(value)
	}

	for _, as := range assets {
		category := CategoryForAsset(as.Type)
		totals[category] = totals[category].Add(as.Valuation())
	}

	return totals, unconvertible, nil
}

func (e *Engine) loadConverter(ctx context.Context) (*currency.Converter, error) {
	rates, err := e.store.Rates.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	converter := currency.NewConverter()
	for _, r := range rates {
		converter.AddRate(r.Source, r.Target, r.Rate)
	}
	return converter, nil
}
