package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const table = "transactions"

var columns = []any{
	"t.id", "t.owner_id", "t.type", "t.amount", "t.source_account_id", "t.destination_account_id",
	"t.category", "t.division", "t.description", "t.created_at", "t.updated_at",
}

var returningColumns = []any{
	"id", "owner_id", "type", "amount", "source_account_id", "destination_account_id",
	"category", "division", "description", "created_at", "updated_at",
}

// Transaction represents a transaction record. The account names are only
// filled in by List.
type Transaction struct {
	ID                     uuid.UUID              `db:"id"`
	OwnerID                uuid.UUID              `db:"owner_id"`
	Type                   ledger.TransactionType `db:"type"`
	Amount                 decimal.Decimal        `db:"amount"`
	SourceAccountID        uuid.UUID              `db:"source_account_id"`
	DestinationAccountID   uuid.NullUUID          `db:"destination_account_id"`
	Category               string                 `db:"category"`
	Division               ledger.Division        `db:"division"`
	Description            string                 `db:"description"`
	CreatedAt              time.Time              `db:"created_at"`
	UpdatedAt              time.Time              `db:"updated_at"`
	SourceAccountName      sql.NullString         `db:"source_account_name"`
	DestinationAccountName sql.NullString         `db:"destination_account_name"`
}

// Fields returns the ledger view of the stored columns.
func (t *Transaction) Fields() ledger.Fields {
	return ledger.Fields{
		Type:                 t.Type,
		Amount:               t.Amount,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Category:             t.Category,
		Division:             t.Division,
		Description:          t.Description,
	}
}

// Entry parses the stored columns into a ledger entry.
func (t *Transaction) Entry() (ledger.Entry, error) {
	return ledger.Parse(t.Fields())
}

// TransactionFilter specifies filters for listing transactions. OwnerID is
// always applied; the optional equality filters only when non-empty.
type TransactionFilter struct {
	OwnerID  uuid.UUID
	Dates    ledger.DateFilter
	Category string
	Division ledger.Division
	Type     ledger.TransactionType
	Limit    int
	Offset   int
}

// TypeTotal is the summed amount of one transaction type.
type TypeTotal struct {
	Type  ledger.TransactionType `db:"type"`
	Total decimal.Decimal        `db:"total"`
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category    string          `db:"category"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

// ITransactionReader defines the read operations on transactions.
// FindByID returns a nil transaction and nil error when the row does not exist.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)
	CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	TotalsByType(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]TypeTotal, error)
	ExpenseTotalsByCategory(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]CategoryTotal, error)
}

// ITransactionWriter defines the transaction operations available inside a storage transaction.
type ITransactionWriter interface {
	ITransactionReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, ownerID uuid.UUID, fields ledger.Fields) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, fields ledger.Fields) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
