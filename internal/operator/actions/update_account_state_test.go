package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/networth-server/internal/classify"
	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// mockAccountWriter is a mock for account.IWriter.
type mockAccountWriter struct {
	mock.Mock
}

func (m *mockAccountWriter) FindByProviderRefForUpdate(ctx context.Context, userID uuid.UUID, providerAccountID string) (*account.Account, error) {
	args := m.Called(ctx, userID, providerAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountWriter) Insert(ctx context.Context, create *account.Create) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountWriter) ApplySync(ctx context.Context, id uuid.UUID, update *account.SyncUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *mockAccountWriter) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

// mockTransactionWriter is a mock for transaction.IWriter.
type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) InsertIfAbsent(ctx context.Context, create *transaction.Create) (bool, error) {
	args := m.Called(ctx, create)
	return args.Bool(0), args.Error(1)
}

// fakeTxWriter satisfies TxWriter over the mocks.
type fakeTxWriter struct {
	accounts     *mockAccountWriter
	transactions *mockTransactionWriter
}

func (f *fakeTxWriter) Accounts() account.IWriter         { return f.accounts }
func (f *fakeTxWriter) Transactions() transaction.IWriter { return f.transactions }
func (f *fakeTxWriter) Commit() error                     { return nil }
func (f *fakeTxWriter) Rollback() error                   { return nil }

func newFakeTxWriter() *fakeTxWriter {
	return &fakeTxWriter{
		accounts:     new(mockAccountWriter),
		transactions: new(mockTransactionWriter),
	}
}

func syncAction(userID uuid.UUID) *UpdateAccountState {
	return &UpdateAccountState{
		UserID:            userID,
		Provider:          "openbank",
		ProviderAccountID: "acc-1",
		Name:              "Checking",
		Balance:           decimal.RequireFromString("1200"),
		Currency:          "EUR",
		Type:              classify.TypeChecking,
		Usage:             classify.UsagePersonal,
		SyncedAt:          time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpdateAccountState_CreatesWhenAbsent(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	newID := uuid.Must(uuid.NewV4())
	writer := newFakeTxWriter()

	writer.accounts.On("FindByProviderRefForUpdate", mock.Anything, userID, "acc-1").
		Return(nil, nil)
	writer.accounts.On("Insert", mock.Anything, mock.MatchedBy(func(create *account.Create) bool {
		return create.UserID == userID &&
			*create.ProviderAccountID == "acc-1" &&
			create.Balance.Equal(decimal.RequireFromString("1200"))
	})).Return(newID, nil)
	writer.accounts.On("ApplySync", mock.Anything, newID, mock.Anything).Return(nil)

	action := syncAction(userID)
	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.True(t, action.Created)
	assert.Equal(t, newID, action.AccountID)
	writer.accounts.AssertExpectations(t)
}

func TestUpdateAccountState_UpdatesExisting(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	existingID := uuid.Must(uuid.NewV4())
	writer := newFakeTxWriter()

	writer.accounts.On("FindByProviderRefForUpdate", mock.Anything, userID, "acc-1").
		Return(&account.Account{ID: existingID, UserID: userID}, nil)
	writer.accounts.On("ApplySync", mock.Anything, existingID, mock.MatchedBy(func(update *account.SyncUpdate) bool {
		return update.Balance.Equal(decimal.RequireFromString("1200")) &&
			update.Name == "Checking"
	})).Return(nil)

	action := syncAction(userID)
	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.False(t, action.Created)
	assert.Equal(t, existingID, action.AccountID)
	writer.accounts.AssertNotCalled(t, "Insert")
}

func TestUpdateAccountState_InsertFailure(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	writer := newFakeTxWriter()

	writer.accounts.On("FindByProviderRefForUpdate", mock.Anything, userID, "acc-1").
		Return(nil, nil)
	writer.accounts.On("Insert", mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("unique violation"))

	err := syncAction(userID).Perform(context.Background(), writer)
	assert.Error(t, err)
	writer.accounts.AssertNotCalled(t, "ApplySync")
}

func TestBackfillTransactions_CountsOnlyInsertedRows(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	writer := newFakeTxWriter()

	first := transaction.Create{AccountID: accountID, Label: "rent", Amount: decimal.RequireFromString("-900")}
	second := transaction.Create{AccountID: accountID, Label: "salary", Amount: decimal.RequireFromString("3000")}

	writer.transactions.On("InsertIfAbsent", mock.Anything, &first).Return(true, nil)
	writer.transactions.On("InsertIfAbsent", mock.Anything, &second).Return(false, nil)

	action := &BackfillTransactions{Items: []transaction.Create{first, second}}
	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.Equal(t, 1, action.Inserted)
}

func TestAdjustBalance_RequiresAccountID(t *testing.T) {
	writer := newFakeTxWriter()
	action := &AdjustBalance{Balance: decimal.RequireFromString("10")}
	err := action.Perform(context.Background(), writer)
	assert.Error(t, err)
}

func TestAdjustBalance_UpdatesBalance(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	writer := newFakeTxWriter()
	writer.accounts.On("UpdateBalance", mock.Anything, accountID, mock.Anything).Return(nil)

	action := &AdjustBalance{AccountID: accountID, Balance: decimal.RequireFromString("10")}
	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	writer.accounts.AssertExpectations(t)
}
