package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/migrations"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

func startPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := storage.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, migrations.Up(store.SQL(), logrus.New()))
	return store
}

func TestStorage_LedgerRoundTrip(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	delegator := operator.NewOperatorDelegator(store, 2)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	register := &actions.RegisterUser{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, delegator.Process(ctx, register))
	owner := register.Result.ID

	duplicate := &actions.RegisterUser{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, delegator.Process(ctx, duplicate), apperr.ErrConflict)

	wallet := &actions.CreateAccount{OwnerID: owner, Name: "Wallet", Type: account.AccountTypeCash, StartingBalance: decimal.NewFromInt(100)}
	require.NoError(t, delegator.Process(ctx, wallet))
	savings := &actions.CreateAccount{OwnerID: owner, Name: "Savings", Type: account.AccountTypeSavings, StartingBalance: decimal.Zero}
	require.NoError(t, delegator.Process(ctx, savings))

	balance := func(id uuid.UUID) decimal.Decimal {
		found, err := store.Read().Accounts.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, found)
		return found.Balance
	}

	expense := &actions.CreateTransaction{OwnerID: owner, Fields: ledger.Fields{
		Type:            ledger.TypeExpense,
		Amount:          decimal.NewFromInt(30),
		SourceAccountID: wallet.Result.ID,
		Category:        "Food",
		Division:        ledger.DivisionPersonal,
		Description:     "Lunch",
	}}
	require.NoError(t, delegator.Process(ctx, expense))
	assert.True(t, decimal.NewFromInt(70).Equal(balance(wallet.Result.ID)))

	transfer := &actions.CreateTransaction{OwnerID: owner, Fields: ledger.Fields{
		Type:                 ledger.TypeTransfer,
		Amount:               decimal.NewFromInt(50),
		SourceAccountID:      wallet.Result.ID,
		DestinationAccountID: uuid.NullUUID{UUID: savings.Result.ID, Valid: true},
		Division:             ledger.DivisionPersonal,
		Description:          "Stash",
	}}
	require.NoError(t, delegator.Process(ctx, transfer))
	assert.True(t, decimal.NewFromInt(20).Equal(balance(wallet.Result.ID)))
	assert.True(t, decimal.NewFromInt(50).Equal(balance(savings.Result.ID)))
	assert.Equal(t, ledger.TransferCategory, transfer.Result.Category)

	update := &actions.UpdateTransaction{OwnerID: owner, TransactionID: expense.Result.ID, Fields: ledger.Fields{
		Type:            ledger.TypeIncome,
		Amount:          decimal.NewFromInt(10),
		SourceAccountID: savings.Result.ID,
		Category:        "Refund",
		Division:        ledger.DivisionOffice,
		Description:     "Lunch refund",
	}}
	require.NoError(t, delegator.Process(ctx, update))
	assert.True(t, decimal.NewFromInt(50).Equal(balance(wallet.Result.ID)))
	assert.True(t, decimal.NewFromInt(60).Equal(balance(savings.Result.ID)))

	listed, err := store.Read().Transactions.List(ctx, &transaction.TransactionFilter{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, tx := range listed {
		assert.True(t, tx.SourceAccountName.Valid)
	}

	now := time.Now()
	totals, err := store.Read().Transactions.TotalsByType(ctx, owner, ledger.ResolveDateFilter(nil, nil, ledger.PeriodWeekly, now.Add(time.Minute)))
	require.NoError(t, err)
	byType := map[ledger.TransactionType]decimal.Decimal{}
	for _, total := range totals {
		byType[total.Type] = total.Total
	}
	assert.True(t, decimal.NewFromInt(10).Equal(byType[ledger.TypeIncome]))

	deleteAccount := &actions.DeleteAccount{OwnerID: owner, AccountID: savings.Result.ID}
	assert.ErrorIs(t, delegator.Process(ctx, deleteAccount), apperr.ErrConflict)

	require.NoError(t, delegator.Process(ctx, &actions.DeleteTransaction{OwnerID: owner, TransactionID: transfer.Result.ID}))
	require.NoError(t, delegator.Process(ctx, &actions.DeleteTransaction{OwnerID: owner, TransactionID: expense.Result.ID}))
	assert.True(t, decimal.NewFromInt(100).Equal(balance(wallet.Result.ID)))
	assert.True(t, balance(savings.Result.ID).IsZero())

	require.NoError(t, delegator.Process(ctx, deleteAccount))
	gone, err := store.Read().Accounts.FindByID(ctx, savings.Result.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStorage_WriterRollback(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	created, err := writer.User.Create(ctx, &user.UserCreate{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback())

	found, err := store.Read().Users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
