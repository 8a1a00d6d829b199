package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// fakeStore keeps rows in maps and implements the writer interfaces. It does
// not roll back; tests that need atomicity go through the operator.
type fakeStore struct {
	accounts     map[uuid.UUID]*account.Account
	transactions map[uuid.UUID]*transaction.Transaction
	users        map[uuid.UUID]*user.User
	locked       []uuid.UUID
	failInsert   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     map[uuid.UUID]*account.Account{},
		transactions: map[uuid.UUID]*transaction.Transaction{},
		users:        map[uuid.UUID]*user.User{},
	}
}

func (f *fakeStore) writer() *storage.Writer {
	return &storage.Writer{
		Account:     &fakeAccounts{f},
		Transaction: &fakeTransactions{f},
		User:        &fakeUsers{f},
	}
}

func (f *fakeStore) addAccount(owner uuid.UUID, balance string) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString(balance)
	f.accounts[id] = &account.Account{
		ID:          id,
		OwnerID:     owner,
		Name:        "account",
		Type:        account.AccountTypeBank,
		Balance:     amount,
		Adjustments: amount,
	}
	return id
}

func (f *fakeStore) balance(id uuid.UUID) string {
	return f.accounts[id].Balance.StringFixed(2)
}

type fakeAccounts struct{ s *fakeStore }

func (a *fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	if acc, ok := a.s.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, nil
}

func (a *fakeAccounts) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	var out []*account.Account
	for _, acc := range a.s.accounts {
		if acc.OwnerID == ownerID {
			copied := *acc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (a *fakeAccounts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a.s.locked = append(a.s.locked, id)
	return a.FindByID(ctx, id)
}

func (a *fakeAccounts) Create(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	acc := &account.Account{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     create.OwnerID,
		Name:        create.Name,
		Type:        create.Type,
		Balance:     create.Balance,
		Adjustments: create.Balance,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	a.s.accounts[acc.ID] = acc
	copied := *acc
	return &copied, nil
}

func (a *fakeAccounts) Update(_ context.Context, id uuid.UUID, update *account.AccountUpdate) (*account.Account, error) {
	acc, ok := a.s.accounts[id]
	if !ok {
		return nil, nil
	}
	if v, ok := update.Name.Get(); ok {
		acc.Name = v
	}
	if v, ok := update.Type.Get(); ok {
		acc.Type = v
	}
	if v, ok := update.Balance.Get(); ok {
		acc.Balance = v
	}
	if v, ok := update.Adjustments.Get(); ok {
		acc.Adjustments = v
	}
	copied := *acc
	return &copied, nil
}

func (a *fakeAccounts) AddToBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) (*account.Account, error) {
	acc, ok := a.s.accounts[id]
	if !ok {
		return nil, errors.New("account row missing")
	}
	acc.Balance = acc.Balance.Add(delta)
	copied := *acc
	return &copied, nil
}

func (a *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	delete(a.s.accounts, id)
	return nil
}

type fakeTransactions struct{ s *fakeStore }

func (t *fakeTransactions) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	if tx, ok := t.s.transactions[id]; ok {
		copied := *tx
		return &copied, nil
	}
	return nil, nil
}

func (t *fakeTransactions) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, tx := range t.s.transactions {
		if tx.OwnerID == filter.OwnerID && filter.Dates.Contains(tx.CreatedAt) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (t *fakeTransactions) ListForAccount(_ context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, tx := range t.s.transactions {
		if tx.SourceAccountID == accountID || (tx.DestinationAccountID.Valid && tx.DestinationAccountID.UUID == accountID) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (t *fakeTransactions) CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	txs, err := t.ListForAccount(ctx, accountID)
	return int64(len(txs)), err
}

func (t *fakeTransactions) TotalsByType(context.Context, uuid.UUID, ledger.DateFilter) ([]transaction.TypeTotal, error) {
	return nil, nil
}

func (t *fakeTransactions) ExpenseTotalsByCategory(context.Context, uuid.UUID, ledger.DateFilter) ([]transaction.CategoryTotal, error) {
	return nil, nil
}

func (t *fakeTransactions) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return t.FindByID(ctx, id)
}

func (t *fakeTransactions) Insert(_ context.Context, ownerID uuid.UUID, fields ledger.Fields) (*transaction.Transaction, error) {
	if t.s.failInsert != nil {
		return nil, t.s.failInsert
	}
	now := time.Now()
	tx := &transaction.Transaction{ID: uuid.Must(uuid.NewV4()), OwnerID: ownerID, CreatedAt: now}
	setFields(tx, fields, now)
	t.s.transactions[tx.ID] = tx
	copied := *tx
	return &copied, nil
}

func (t *fakeTransactions) Update(_ context.Context, id uuid.UUID, fields ledger.Fields) (*transaction.Transaction, error) {
	tx, ok := t.s.transactions[id]
	if !ok {
		return nil, nil
	}
	setFields(tx, fields, time.Now())
	copied := *tx
	return &copied, nil
}

func (t *fakeTransactions) Delete(_ context.Context, id uuid.UUID) error {
	delete(t.s.transactions, id)
	return nil
}

func setFields(tx *transaction.Transaction, fields ledger.Fields, now time.Time) {
	tx.Type = fields.Type
	tx.Amount = fields.Amount
	tx.SourceAccountID = fields.SourceAccountID
	tx.DestinationAccountID = fields.DestinationAccountID
	tx.Category = fields.Category
	tx.Division = fields.Division
	tx.Description = fields.Description
	tx.UpdatedAt = now
}

type fakeUsers struct{ s *fakeStore }

func (u *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if found, ok := u.s.users[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, nil
}

func (u *fakeUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, found := range u.s.users {
		if found.Email == email {
			copied := *found
			return &copied, nil
		}
	}
	return nil, nil
}

func (u *fakeUsers) FindByResetToken(_ context.Context, token string, now time.Time) (*user.User, error) {
	for _, found := range u.s.users {
		if found.ResetToken.Valid && found.ResetToken.String == token && found.ResetExpires.Time.After(now) {
			copied := *found
			return &copied, nil
		}
	}
	return nil, nil
}

func (u *fakeUsers) Create(_ context.Context, create *user.UserCreate) (*user.User, error) {
	created := &user.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         create.Name,
		Email:        create.Email,
		PasswordHash: create.PasswordHash,
	}
	u.s.users[created.ID] = created
	copied := *created
	return &copied, nil
}

func (u *fakeUsers) SetResetToken(_ context.Context, id uuid.UUID, token string, expires time.Time) error {
	found := u.s.users[id]
	found.ResetToken.String, found.ResetToken.Valid = token, true
	found.ResetExpires.Time, found.ResetExpires.Valid = expires, true
	return nil
}

func (u *fakeUsers) ClearResetToken(_ context.Context, id uuid.UUID) error {
	found := u.s.users[id]
	found.ResetToken.String, found.ResetToken.Valid = "", false
	found.ResetExpires.Valid = false
	return nil
}

func (u *fakeUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u.s.users[id].PasswordHash = passwordHash
	return u.ClearResetToken(ctx, id)
}
