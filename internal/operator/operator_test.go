package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/networth-server/internal/operator/actions"
	"github.com/carson-networks/networth-server/internal/storage/account"
	"github.com/carson-networks/networth-server/internal/storage/transaction"
)

// recordingWriter tracks the transaction outcome.
type recordingWriter struct {
	committed  bool
	rolledBack bool
}

func (w *recordingWriter) Accounts() account.IWriter         { return nil }
func (w *recordingWriter) Transactions() transaction.IWriter { return nil }
func (w *recordingWriter) Commit() error {
	w.committed = true
	return nil
}
func (w *recordingWriter) Rollback() error {
	w.rolledBack = true
	return nil
}

type fakeStore struct {
	writer   *recordingWriter
	writeErr error
}

func (s *fakeStore) Write(context.Context) (actions.TxWriter, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	s.writer = &recordingWriter{}
	return s.writer, nil
}

// funcAction runs an arbitrary function as an action.
type funcAction struct {
	fn func(ctx context.Context, writer actions.TxWriter) error
}

func (a *funcAction) Perform(ctx context.Context, writer actions.TxWriter) error {
	return a.fn(ctx, writer)
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	store := &fakeStore{}
	delegator := NewOperatorDelegator(store, 1)
	delegator.Start()
	defer delegator.Stop()

	err := delegator.Process(context.Background(), &funcAction{
		fn: func(context.Context, actions.TxWriter) error { return nil },
	})
	assert.NoError(t, err)
	assert.True(t, store.writer.committed)
	assert.False(t, store.writer.rolledBack)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	store := &fakeStore{}
	delegator := NewOperatorDelegator(store, 1)
	delegator.Start()
	defer delegator.Stop()

	actionErr := errors.New("constraint violation")
	err := delegator.Process(context.Background(), &funcAction{
		fn: func(context.Context, actions.TxWriter) error { return actionErr },
	})
	assert.ErrorIs(t, err, actionErr)
	assert.True(t, store.writer.rolledBack)
	assert.False(t, store.writer.committed)
}

func TestProcess_PropagatesWriteError(t *testing.T) {
	writeErr := errors.New("connection refused")
	delegator := NewOperatorDelegator(&fakeStore{writeErr: writeErr}, 1)
	delegator.Start()
	defer delegator.Stop()

	err := delegator.Process(context.Background(), &funcAction{
		fn: func(context.Context, actions.TxWriter) error { return nil },
	})
	assert.ErrorIs(t, err, writeErr)
}
