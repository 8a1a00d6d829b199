package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const maxLimit = 100

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader    *storage.Reader
	processor Processor
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader *storage.Reader, processor Processor, now func() time.Time) *TransactionService {
	return &TransactionService{reader: reader, processor: processor, now: now}
}

// ListTransactions returns the owner's transactions, newest first. Without a
// cursor every match is returned; with one, a page and the cursor of the
// next page if there is one.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, query TransactionQuery, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if query.Division != "" && !query.Division.Valid() {
		return nil, nil, apperr.Validation("division must be office or personal")
	}
	if query.Type != "" && !query.Type.Valid() {
		return nil, nil, apperr.Validation("type must be one of income, expense or transfer")
	}

	filter := &transaction.TransactionFilter{
		OwnerID:  ownerID,
		Dates:    s.dates(query),
		Category: query.Category,
		Division: query.Division,
		Type:     query.Type,
	}
	if cursor != nil {
		if cursor.Limit < 1 || cursor.Limit > maxLimit {
			return nil, nil, apperr.Validation("limit must be between 1 and %d", maxLimit)
		}
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
	}

	defer logging.GetLogData(ctx).AddTiming("listTransactions")()
	rows, err := s.reader.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *TransactionCursor
	if cursor != nil && len(rows) > cursor.Limit {
		rows = rows[:cursor.Limit]
		nextCursor = &TransactionCursor{
			Position: cursor.Position + cursor.Limit,
			Limit:    cursor.Limit,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nextCursor, nil
}

// CreateTransaction records a transaction and applies it to the account balances.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, fields ledger.Fields) (*Transaction, error) {
	action := &actions.CreateTransaction{OwnerID: ownerID, Fields: fields}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	created := transactionFromStorage(action.Result)
	return &created, nil
}

// UpdateTransaction replaces the transaction's fields, moving its balance effect.
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, id uuid.UUID, fields ledger.Fields) (*Transaction, error) {
	action := &actions.UpdateTransaction{OwnerID: ownerID, TransactionID: id, Fields: fields}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	updated := transactionFromStorage(action.Result)
	return &updated, nil
}

// DeleteTransaction reverts the transaction's balance effect and removes it.
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{OwnerID: ownerID, TransactionID: id})
}

// Summary totals income and expense over the query's date range. Transfers
// move money between the owner's own accounts and are left out.
func (s *TransactionService) Summary(ctx context.Context, ownerID uuid.UUID, query TransactionQuery) (*Summary, error) {
	totals, err := s.reader.Transactions.TotalsByType(ctx, ownerID, s.dates(query))
	if err != nil {
		return nil, err
	}

	summary := &Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, total := range totals {
		switch total.Type {
		case ledger.TypeIncome:
			summary.Income = summary.Income.Add(total.Total)
		case ledger.TypeExpense:
			summary.Expense = summary.Expense.Add(total.Total)
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}

// CategorySummary totals expenses per category, largest first.
func (s *TransactionService) CategorySummary(ctx context.Context, ownerID uuid.UUID, query TransactionQuery) ([]CategoryTotal, error) {
	rows, err := s.reader.Transactions.ExpenseTotalsByCategory(ctx, ownerID, s.dates(query))
	if err != nil {
		return nil, err
	}

	totals := make([]CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = CategoryTotal{Category: row.Category, TotalAmount: row.TotalAmount}
	}
	return totals, nil
}

func (s *TransactionService) dates(query TransactionQuery) ledger.DateFilter {
	return ledger.ResolveDateFilter(query.From, query.To, query.Period, s.now())
}
