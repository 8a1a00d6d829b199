// Package ledger holds the rules that tie transactions to account balances:
// the per-type flow variants, the balance effect of each, and the date
// filters used by listings and summaries.
package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
)

type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

type Division string

const (
	DivisionOffice   Division = "office"
	DivisionPersonal Division = "personal"
)

func (d Division) Valid() bool {
	return d == DivisionOffice || d == DivisionPersonal
}

// TransferCategory is the category stored on every transfer.
const TransferCategory = "Transfer"

const maxDescriptionLength = 100

// MaxAmount is the exclusive upper bound on the magnitude of stored money
// values. Amount and balance columns are NUMERIC(20,2).
var MaxAmount = decimal.New(1, 18)

// Flow is the type-specific part of a transaction. Each variant carries
// exactly the fields its type needs.
type Flow interface {
	Type() TransactionType
	Effects(amount decimal.Decimal) []Effect
	flow()
}

type Income struct {
	Account  uuid.UUID
	Category string
}

type Expense struct {
	Account  uuid.UUID
	Category string
}

type Transfer struct {
	From uuid.UUID
	To   uuid.UUID
}

func (Income) Type() TransactionType   { return TypeIncome }
func (Expense) Type() TransactionType  { return TypeExpense }
func (Transfer) Type() TransactionType { return TypeTransfer }

func (Income) flow()   {}
func (Expense) flow()  {}
func (Transfer) flow() {}

// Fields is the flat form of a transaction as it arrives from a request or
// leaves the store.
type Fields struct {
	Type                 TransactionType
	Amount               decimal.Decimal
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.NullUUID
	Category             string
	Division             Division
	Description          string
}

// Entry is a validated transaction body.
type Entry struct {
	Flow        Flow
	Amount      decimal.Decimal
	Division    Division
	Description string
}

// Parse validates f and builds the matching Entry. The destination account is
// ignored for income and expense; the category is ignored for transfers.
func Parse(f Fields) (Entry, error) {
	if !f.Type.Valid() {
		return Entry{}, apperr.Validation("type must be one of income, expense or transfer")
	}
	if !f.Amount.IsPositive() {
		return Entry{}, apperr.Validation("amount must be greater than 0")
	}
	if f.Amount.GreaterThanOrEqual(MaxAmount) {
		return Entry{}, apperr.Validation("amount must be less than %s", MaxAmount.String())
	}
	if !f.Amount.Equal(f.Amount.Round(2)) {
		return Entry{}, apperr.Validation("amount cannot have more than 2 decimal places")
	}
	if f.SourceAccountID.IsNil() {
		return Entry{}, apperr.Validation("sourceAccountID is required")
	}
	if !f.Division.Valid() {
		return Entry{}, apperr.Validation("division must be office or personal")
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		return Entry{}, apperr.Validation("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return Entry{}, apperr.Validation("description cannot be more than %d characters", maxDescriptionLength)
	}

	entry := Entry{
		Amount:      f.Amount,
		Division:    f.Division,
		Description: description,
	}

	category := strings.TrimSpace(f.Category)
	switch f.Type {
	case TypeIncome:
		if category == "" {
			return Entry{}, apperr.Validation("category is required for income")
		}
		entry.Flow = Income{Account: f.SourceAccountID, Category: category}
	case TypeExpense:
		if category == "" {
			return Entry{}, apperr.Validation("category is required for expense")
		}
		entry.Flow = Expense{Account: f.SourceAccountID, Category: category}
	case TypeTransfer:
		if !f.DestinationAccountID.Valid || f.DestinationAccountID.UUID.IsNil() {
			return Entry{}, apperr.Validation("destinationAccountID is required for transfers")
		}
		if f.DestinationAccountID.UUID == f.SourceAccountID {
			return Entry{}, apperr.Validation("destinationAccountID must differ from sourceAccountID")
		}
		entry.Flow = Transfer{From: f.SourceAccountID, To: f.DestinationAccountID.UUID}
	}

	return entry, nil
}

// Fields flattens the entry back into its stored form.
func (e Entry) Fields() Fields {
	f := Fields{
		Type:        e.Flow.Type(),
		Amount:      e.Amount,
		Division:    e.Division,
		Description: e.Description,
	}
	switch flow := e.Flow.(type) {
	case Income:
		f.SourceAccountID = flow.Account
		f.Category = flow.Category
	case Expense:
		f.SourceAccountID = flow.Account
		f.Category = flow.Category
	case Transfer:
		f.SourceAccountID = flow.From
		f.DestinationAccountID = uuid.NullUUID{UUID: flow.To, Valid: true}
		f.Category = TransferCategory
	}
	return f
}

// Effects returns the balance deltas this entry applies.
func (e Entry) Effects() []Effect {
	return e.Flow.Effects(e.Amount)
}

// Accounts lists the accounts the entry touches, source first.
func (e Entry) Accounts() []uuid.UUID {
	effects := e.Effects()
	ids := make([]uuid.UUID, len(effects))
	for i, effect := range effects {
		ids[i] = effect.AccountID
	}
	return ids
}
