package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/networth-server/internal/operator/actions"
	"github.com/carson-networks/networth-server/internal/provider"
	"github.com/carson-networks/networth-server/internal/storage"
	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/bankconnection"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// -- fakes --

type fakeAccounts struct {
	stale       []*account.Stale
	byRef       map[string]*account.Account
	byID        map[uuid.UUID]*account.Account
	staleCutoff time.Time
}

func (f *fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	return f.byID[id], nil
}

func (f *fakeAccounts) FindByProviderRef(_ context.Context, _ uuid.UUID, providerAccountID string) (*account.Account, error) {
	return f.byRef[providerAccountID], nil
}

func (f *fakeAccounts) ListByUser(context.Context, uuid.UUID, bool) ([]*account.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) ListStale(_ context.Context, syncedBefore time.Time) ([]*account.Stale, error) {
	f.staleCutoff = syncedBefore
	return f.stale, nil
}

type fakeTransactions struct {
	counts map[uuid.UUID]int64
}

func (f *fakeTransactions) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	return f.counts[accountID], nil
}

func (f *fakeTransactions) ListByAccount(context.Context, uuid.UUID, int) ([]*transaction.Transaction, error) {
	return nil, nil
}

type fakeConnections struct {
	byUser    map[uuid.UUID]*bankconnection.Connection
	lastSyncs []uuid.UUID
}

func (f *fakeConnections) FindActiveByUser(_ context.Context, userID uuid.UUID) (*bankconnection.Connection, error) {
	return f.byUser[userID], nil
}

func (f *fakeConnections) UpdateLastSync(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.lastSyncs = append(f.lastSyncs, id)
	return nil
}

func (f *fakeConnections) UpdateStatus(context.Context, uuid.UUID, bankconnection.Status) error {
	return nil
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ListAccounts(ctx context.Context, token string) ([]provider.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Account), args.Error(1)
}

func (m *mockProvider) ListTransactions(ctx context.Context, token, providerAccountID string, limit int) ([]provider.Transaction, error) {
	args := m.Called(ctx, token, providerAccountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Transaction), args.Error(1)
}

// fakePipeline applies actions synchronously against nothing: it assigns
// IDs and records what was processed.
type fakePipeline struct {
	processed []actions.IAction
	failWith  error
}

func (p *fakePipeline) Process(_ context.Context, action actions.IAction) error {
	if p.failWith != nil {
		return p.failWith
	}
	switch a := action.(type) {
	case *actions.UpdateAccountState:
		if a.AccountID == uuid.Nil {
			a.AccountID = uuid.Must(uuid.NewV4())
			a.Created = true
		}
	case *actions.BackfillTransactions:
		a.Inserted = len(a.Items)
	}
	p.processed = append(p.processed, action)
	return nil
}

// -- helpers --

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func connection(userID uuid.UUID) *bankconnection.Connection {
	return &bankconnection.Connection{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   userID,
		Provider: "openbank",
		Token:    "token-" + userID.String()[:8],
		Status:   bankconnection.StatusActive,
	}
}

func providerAccount(ref, name string, balance string) provider.Account {
	return provider.Account{
		ProviderAccountID: ref,
		Name:              name,
		Balance:           decimal.RequireFromString(balance),
		Currency:          "EUR",
	}
}

func providerTransactions(n int) []provider.Transaction {
	out := make([]provider.Transaction, n)
	for i := range out {
		out[i] = provider.Transaction{
			Date:   time.Date(2025, 3, 1+i%28, 0, 0, 0, 0, time.UTC),
			Amount: decimal.RequireFromString("-10.50"),
			Label:  "groceries",
		}
	}
	return out
}

func newTestOrchestrator(store *storage.Storage, client provider.Client, pipeline Pipeline) *Orchestrator {
	o := NewOrchestrator(store, client, pipeline, quietLogger(), 100)
	o.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	o.detector.now = o.now
	return o
}

// -- tests --

func TestRun_PerUserFailureIsolation(t *testing.T) {
	userA := uuid.Must(uuid.NewV4()) // no connection
	userB := uuid.Must(uuid.NewV4()) // provider times out
	userC := uuid.Must(uuid.NewV4()) // succeeds with two accounts

	connB := connection(userB)
	connC := connection(userC)

	accounts := &fakeAccounts{
		stale: []*account.Stale{
			{AccountID: uuid.Must(uuid.NewV4()), UserID: userA, ProviderAccountID: "a-1"},
			{AccountID: uuid.Must(uuid.NewV4()), UserID: userB, ProviderAccountID: "b-1"},
			{AccountID: uuid.Must(uuid.NewV4()), UserID: userC, ProviderAccountID: "c-1"},
		},
		byRef: map[string]*account.Account{},
	}
	transactions := &fakeTransactions{counts: map[uuid.UUID]int64{}}
	connections := &fakeConnections{byUser: map[uuid.UUID]*bankconnection.Connection{
		userB: connB,
		userC: connC,
	}}

	client := new(mockProvider)
	client.On("ListAccounts", mock.Anything, connB.Token).
		Return(nil, errors.New("request timeout"))
	client.On("ListAccounts", mock.Anything, connC.Token).
		Return([]provider.Account{
			providerAccount("c-1", "Checking", "1200"),
			providerAccount("c-2", "Savings", "5000"),
		}, nil)
	// Both of userC's accounts have zero local transactions; one backfill
	// returns rows, the other returns none.
	client.On("ListTransactions", mock.Anything, connC.Token, "c-1", 100).
		Return(providerTransactions(15), nil)
	client.On("ListTransactions", mock.Anything, connC.Token, "c-2", 100).
		Return([]provider.Transaction{}, nil)

	pipeline := &fakePipeline{}
	store := &storage.Storage{
		Accounts:     accounts,
		Transactions: transactions,
		Connections:  connections,
	}

	summary, err := newTestOrchestrator(store, client, pipeline).Run(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 3, summary.StaleAccounts)
	assert.Equal(t, 1, summary.UsersRefreshed)
	assert.Equal(t, 2, summary.UsersFailed)
	assert.Equal(t, 2, summary.AccountsUpdated)
	assert.Equal(t, 15, summary.TransactionsInserted)

	// Only the successful user's connection got a last_sync bump.
	assert.Equal(t, []uuid.UUID{connC.ID}, connections.lastSyncs)
	client.AssertExpectations(t)
}

func TestRun_NoStaleAccounts(t *testing.T) {
	store := &storage.Storage{
		Accounts: &fakeAccounts{},
	}
	client := new(mockProvider)

	summary, err := newTestOrchestrator(store, client, &fakePipeline{}).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.StaleAccounts)
	client.AssertNotCalled(t, "ListAccounts")
}

func TestRun_BackfillSkippedWhenTransactionsExist(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	conn := connection(userID)
	localID := uuid.Must(uuid.NewV4())
	ref := "acc-1"

	local := &account.Account{ID: localID, UserID: userID, ProviderAccountID: &ref}
	store := &storage.Storage{
		Accounts: &fakeAccounts{
			stale: []*account.Stale{{AccountID: localID, UserID: userID, ProviderAccountID: ref}},
			byRef: map[string]*account.Account{ref: local},
		},
		Transactions: &fakeTransactions{counts: map[uuid.UUID]int64{localID: 40}},
		Connections:  &fakeConnections{byUser: map[uuid.UUID]*bankconnection.Connection{userID: conn}},
	}

	client := new(mockProvider)
	client.On("ListAccounts", mock.Anything, conn.Token).
		Return([]provider.Account{providerAccount(ref, "Checking", "900")}, nil)

	pipeline := &fakePipeline{}
	summary, err := newTestOrchestrator(store, client, pipeline).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.AccountsUpdated)
	assert.Equal(t, 0, summary.TransactionsInserted)
	client.AssertNotCalled(t, "ListTransactions")

	// The pre-read account's ID flows into the update action.
	update, ok := pipeline.processed[0].(*actions.UpdateAccountState)
	assert.True(t, ok)
	assert.Equal(t, localID, update.AccountID)
	assert.False(t, update.Created)
}

func TestRun_BackfillFailureKeepsBalanceUpdate(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	conn := connection(userID)
	ref := "acc-1"

	store := &storage.Storage{
		Accounts: &fakeAccounts{
			stale: []*account.Stale{{AccountID: uuid.Must(uuid.NewV4()), UserID: userID, ProviderAccountID: ref}},
			byRef: map[string]*account.Account{},
		},
		Transactions: &fakeTransactions{counts: map[uuid.UUID]int64{}},
		Connections:  &fakeConnections{byUser: map[uuid.UUID]*bankconnection.Connection{userID: conn}},
	}

	client := new(mockProvider)
	client.On("ListAccounts", mock.Anything, conn.Token).
		Return([]provider.Account{providerAccount(ref, "Checking", "900")}, nil)
	client.On("ListTransactions", mock.Anything, conn.Token, ref, 100).
		Return(nil, errors.New("server error"))

	summary, err := newTestOrchestrator(store, client, &fakePipeline{}).Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.UsersRefreshed)
	assert.Equal(t, 1, summary.AccountsUpdated)
	assert.Equal(t, 0, summary.TransactionsInserted)
}

func TestRefreshAccount_NotProviderLinked(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	store := &storage.Storage{
		Accounts: &fakeAccounts{byID: map[uuid.UUID]*account.Account{
			accountID: {ID: accountID, Name: "Manual savings"},
		}},
	}

	err := newTestOrchestrator(store, new(mockProvider), &fakePipeline{}).
		RefreshAccount(context.Background(), accountID)
	assert.Error(t, err)
}

func TestRefreshAccount_UnknownAccount(t *testing.T) {
	store := &storage.Storage{
		Accounts: &fakeAccounts{byID: map[uuid.UUID]*account.Account{}},
	}

	err := newTestOrchestrator(store, new(mockProvider), &fakePipeline{}).
		RefreshAccount(context.Background(), uuid.Must(uuid.NewV4()))
	assert.Error(t, err)
}

func TestRefreshAccount_AppliesOnlyRequestedAccount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	conn := connection(userID)
	ref := "acc-1"
	accountID := uuid.Must(uuid.NewV4())
	acc := &account.Account{ID: accountID, UserID: userID, ProviderAccountID: &ref}

	store := &storage.Storage{
		Accounts: &fakeAccounts{
			byID:  map[uuid.UUID]*account.Account{accountID: acc},
			byRef: map[string]*account.Account{ref: acc},
		},
		Transactions: &fakeTransactions{counts: map[uuid.UUID]int64{accountID: 5}},
		Connections:  &fakeConnections{byUser: map[uuid.UUID]*bankconnection.Connection{userID: conn}},
	}

	client := new(mockProvider)
	client.On("ListAccounts", mock.Anything, conn.Token).
		Return([]provider.Account{
			providerAccount("other", "Other", "1"),
			providerAccount(ref, "Checking", "900"),
		}, nil)

	pipeline := &fakePipeline{}
	err := newTestOrchestrator(store, client, pipeline).RefreshAccount(context.Background(), accountID)
	assert.NoError(t, err)
	assert.Len(t, pipeline.processed, 1)
	update := pipeline.processed[0].(*actions.UpdateAccountState)
	assert.Equal(t, ref, update.ProviderAccountID)
}
