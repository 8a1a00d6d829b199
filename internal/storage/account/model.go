package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const table = "accounts"

var columns = []any{"id", "owner_id", "name", "type", "balance", "adjustments", "created_at", "updated_at"}

type AccountType string

const (
	AccountTypeBank    AccountType = "bank"
	AccountTypeCash    AccountType = "cash"
	AccountTypeCredit  AccountType = "credit"
	AccountTypeSavings AccountType = "savings"
	AccountTypeOther   AccountType = "other"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBank, AccountTypeCash, AccountTypeCredit, AccountTypeSavings, AccountTypeOther:
		return true
	}
	return false
}

// Account represents an account record.
//
// Adjustments is the opening balance plus every manual balance edit, so
// Balance minus Adjustments is the total of the transaction effects.
type Account struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	Name        string          `db:"name"`
	Type        AccountType     `db:"type"`
	Balance     decimal.Decimal `db:"balance"`
	Adjustments decimal.Decimal `db:"adjustments"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	OwnerID uuid.UUID
	Name    string
	Type    AccountType
	Balance decimal.Decimal
}

// AccountUpdate holds the columns to change. Unset fields are left as they are.
type AccountUpdate struct {
	Name        omit.Val[string]
	Type        omit.Val[AccountType]
	Balance     omit.Val[decimal.Decimal]
	Adjustments omit.Val[decimal.Decimal]
}

// IAccountReader defines the read operations on accounts.
// Finders return a nil account and nil error when the row does not exist.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
}

// IAccountWriter defines the account operations available inside a storage transaction.
type IAccountWriter interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error)
	AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
