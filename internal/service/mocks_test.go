package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/mail"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockAccountReader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionReader) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountID)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionReader) CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionReader) TotalsByType(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]transaction.TypeTotal, error) {
	args := m.Called(ctx, ownerID, dates)
	rows, _ := args.Get(0).([]transaction.TypeTotal)
	return rows, args.Error(1)
}

func (m *mockTransactionReader) ExpenseTotalsByCategory(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]transaction.CategoryTotal, error) {
	args := m.Called(ctx, ownerID, dates)
	rows, _ := args.Get(0).([]transaction.CategoryTotal)
	return rows, args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserReader) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserReader) FindByResetToken(ctx context.Context, token string, now time.Time) (*user.User, error) {
	args := m.Called(ctx, token, now)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type testDeps struct {
	processor    *mockProcessor
	accounts     *mockAccountReader
	transactions *mockTransactionReader
	users        *mockUserReader
	mailer       *mockMailer
	tokens       *mockTokens
	reader       *storage.Reader
}

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestDeps() *testDeps {
	d := &testDeps{
		processor:    &mockProcessor{},
		accounts:     &mockAccountReader{},
		transactions: &mockTransactionReader{},
		users:        &mockUserReader{},
		mailer:       &mockMailer{},
		tokens:       &mockTokens{},
	}
	d.reader = &storage.Reader{Accounts: d.accounts, Transactions: d.transactions, Users: d.users}
	return d
}

func clock() time.Time {
	return testNow
}
