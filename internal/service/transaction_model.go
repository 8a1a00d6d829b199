package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID                     uuid.UUID
	Type                   ledger.TransactionType
	Amount                 decimal.Decimal
	SourceAccountID        uuid.UUID
	SourceAccountName      string
	DestinationAccountID   uuid.NullUUID
	DestinationAccountName string
	Category               string
	Division               ledger.Division
	Description            string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TransactionQuery narrows a listing or an aggregate. An explicit From or To
// takes precedence over Period.
type TransactionQuery struct {
	From     *time.Time
	To       *time.Time
	Period   ledger.Period
	Category string
	Division ledger.Division
	Type     ledger.TransactionType
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type CategoryTotal struct {
	Category    string
	TotalAmount decimal.Decimal
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:                     row.ID,
		Type:                   row.Type,
		Amount:                 row.Amount,
		SourceAccountID:        row.SourceAccountID,
		SourceAccountName:      row.SourceAccountName.String,
		DestinationAccountID:   row.DestinationAccountID,
		DestinationAccountName: row.DestinationAccountName.String,
		Category:               row.Category,
		Division:               row.Division,
		Description:            row.Description,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}
