package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	Name      string
	Type      account.AccountType
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCreate is the input for opening an account. An empty Type means cash.
type AccountCreate struct {
	Name    string
	Type    account.AccountType
	Balance decimal.Decimal
}

// AccountPatch holds the fields to change on an account.
type AccountPatch struct {
	Name    omit.Val[string]
	Type    omit.Val[account.AccountType]
	Balance omit.Val[decimal.Decimal]
}

// Reconciliation compares an account's cached balance with the total its
// transactions imply. Drift is zero for a consistent account.
type Reconciliation struct {
	AccountID       uuid.UUID
	Balance         decimal.Decimal
	Adjustments     decimal.Decimal
	LedgerTotal     decimal.Decimal
	ExpectedBalance decimal.Decimal
	Drift           decimal.Decimal
	Transactions    int
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:        row.ID,
		Name:      row.Name,
		Type:      row.Type,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
