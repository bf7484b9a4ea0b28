package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-ledger/internal/errors"
	"account-ledger/internal/repository"
)

func newLedger() (*LedgerService, *recordingNotifier) {
	repo := repository.NewAccountRepository(discardLogger())
	notifier := &recordingNotifier{}
	transfers := NewTransferService(repo, notifier, time.Second, discardLogger())
	return NewLedgerService(repo, transfers, discardLogger()), notifier
}

func TestLedgerService_CreateAndGetAccount(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()

	account, err := ledger.CreateAccount(ctx, "Id-123", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "Id-123", account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	got, err := ledger.GetAccount(ctx, "Id-123")
	require.NoError(t, err)
	assertDecimalEqual(t, "1000", got.Balance)
}

func TestLedgerService_CreateDuplicateAccount(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()

	_, err := ledger.CreateAccount(ctx, "Id-123", decimal.NewFromInt(1000))
	require.NoError(t, err)

	_, err = ledger.CreateAccount(ctx, "Id-123", decimal.NewFromInt(1))
	assert.True(t, stderrors.Is(err, errors.ErrDuplicateAccount))

	got, err := ledger.GetAccount(ctx, "Id-123")
	require.NoError(t, err)
	assertDecimalEqual(t, "1000", got.Balance)
}

func TestLedgerService_GetMissingAccount(t *testing.T) {
	ledger, _ := newLedger()

	_, err := ledger.GetAccount(context.Background(), "missing")
	assert.True(t, stderrors.Is(err, errors.ErrAccountNotFound))
}

func TestLedgerService_TransferMoney(t *testing.T) {
	ledger, notifier := newLedger()
	ctx := context.Background()

	_, err := ledger.CreateAccount(ctx, "Id-123", decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = ledger.CreateAccount(ctx, "Id-456", decimal.NewFromInt(500))
	require.NoError(t, err)

	transfer, err := ledger.TransferMoney(ctx, "Id-123", "Id-456", decimal.NewFromInt(100))
	require.NoError(t, err)
	assertDecimalEqual(t, "100", transfer.Amount)

	source, _ := ledger.GetAccount(ctx, "Id-123")
	destination, _ := ledger.GetAccount(ctx, "Id-456")
	assertDecimalEqual(t, "900", source.Balance)
	assertDecimalEqual(t, "600", destination.Balance)
	assert.Len(t, notifier.Sent(), 2)
}
