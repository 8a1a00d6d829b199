package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

var (
	testOwner   = uuid.Must(uuid.FromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	testAccount = uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000"))
	testSavings = uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440001"))
	testTxID    = uuid.Must(uuid.FromString("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
)

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, ownerID, query, cursor)
	var next *service.TransactionCursor
	if c := args.Get(1); c != nil {
		next = c.(*service.TransactionCursor)
	}
	return args.Get(0).([]service.Transaction), next, args.Error(2)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, fields ledger.Fields) (*service.Transaction, error) {
	args := m.Called(ctx, ownerID, fields)
	if tx := args.Get(0); tx != nil {
		return tx.(*service.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, ownerID, id uuid.UUID, fields ledger.Fields) (*service.Transaction, error) {
	args := m.Called(ctx, ownerID, id, fields)
	if tx := args.Get(0); tx != nil {
		return tx.(*service.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockTransactionService) Summary(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery) (*service.Summary, error) {
	args := m.Called(ctx, ownerID, query)
	if s := args.Get(0); s != nil {
		return s.(*service.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTransactionService) CategorySummary(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery) ([]service.CategoryTotal, error) {
	args := m.Called(ctx, ownerID, query)
	return args.Get(0).([]service.CategoryTotal), args.Error(1)
}

// newTestAPI returns an API where every request is made by testOwner.
func newTestAPI(t *testing.T) humatest.TestAPI {
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), testOwner)))
	})
	return api
}

func sampleTransaction() *service.Transaction {
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return &service.Transaction{
		ID:                testTxID,
		Type:              ledger.TypeExpense,
		Amount:            decimal.NewFromInt(30),
		SourceAccountID:   testAccount,
		SourceAccountName: "Wallet",
		Category:          "Food",
		Division:          ledger.DivisionPersonal,
		Description:       "Lunch",
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}
