package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// AccountService handles account business logic.
type AccountService struct {
	reader    *storage.Reader
	processor Processor
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader *storage.Reader, processor Processor) *AccountService {
	return &AccountService{reader: reader, processor: processor}
}

// ListAccounts returns every account of the owner.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]Account, error) {
	rows, err := s.reader.Accounts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	converted := make([]Account, len(rows))
	for i, row := range rows {
		converted[i] = accountFromStorage(row)
	}
	return converted, nil
}

// CreateAccount opens an account for the owner.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, create AccountCreate) (*Account, error) {
	name, err := accountName(create.Name)
	if err != nil {
		return nil, err
	}
	accountType := create.Type
	if accountType == "" {
		accountType = account.AccountTypeCash
	}
	if !accountType.Valid() {
		return nil, invalidAccountType()
	}
	if err = checkCents(create.Balance); err != nil {
		return nil, err
	}

	action := &actions.CreateAccount{
		OwnerID:         ownerID,
		Name:            name,
		Type:            accountType,
		StartingBalance: create.Balance,
	}
	if err = s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	created := accountFromStorage(action.Result)
	return &created, nil
}

// UpdateAccount applies the patch. Editing the balance is recorded as a
// manual adjustment.
func (s *AccountService) UpdateAccount(ctx context.Context, ownerID, id uuid.UUID, patch AccountPatch) (*Account, error) {
	action := &actions.UpdateAccount{OwnerID: ownerID, AccountID: id}

	if name, ok := patch.Name.Get(); ok {
		trimmed, err := accountName(name)
		if err != nil {
			return nil, err
		}
		action.Name = omit.From(trimmed)
	}
	if accountType, ok := patch.Type.Get(); ok {
		if !accountType.Valid() {
			return nil, invalidAccountType()
		}
		action.Type = omit.From(accountType)
	}
	if balance, ok := patch.Balance.Get(); ok {
		if err := checkCents(balance); err != nil {
			return nil, err
		}
		action.Balance = omit.From(balance)
	}

	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	updated := accountFromStorage(action.Result)
	return &updated, nil
}

// DeleteAccount removes an account no transaction references.
func (s *AccountService) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteAccount{OwnerID: ownerID, AccountID: id})
}

// Reconcile recomputes the ledger total of an account from its transactions
// and reports how far the cached balance has drifted from it.
func (s *AccountService) Reconcile(ctx context.Context, ownerID, id uuid.UUID) (*Reconciliation, error) {
	acc, err := s.reader.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperr.NotFound("account")
	}
	if acc.OwnerID != ownerID {
		return nil, apperr.Forbidden("account")
	}

	rows, err := s.reader.Transactions.ListForAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	ledgerTotal := decimal.Zero
	for _, row := range rows {
		entry, err := row.Entry()
		if err != nil {
			return nil, fmt.Errorf("stored transaction %s: %w", row.ID, err)
		}
		ledgerTotal = ledgerTotal.Add(ledger.NetFor(id, entry.Effects()))
	}

	expected := acc.Adjustments.Add(ledgerTotal)
	return &Reconciliation{
		AccountID:       id,
		Balance:         acc.Balance,
		Adjustments:     acc.Adjustments,
		LedgerTotal:     ledgerTotal,
		ExpectedBalance: expected,
		Drift:           acc.Balance.Sub(expected),
		Transactions:    len(rows),
	}, nil
}

func accountName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperr.Validation("name is required")
	}
	return trimmed, nil
}

func invalidAccountType() error {
	return apperr.Validation("type must be one of bank, cash, credit, savings or other")
}

func checkCents(amount decimal.Decimal) error {
	if amount.Abs().GreaterThanOrEqual(ledger.MaxAmount) {
		return apperr.Validation("balance must be between -%s and %s", ledger.MaxAmount.String(), ledger.MaxAmount.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("balance cannot have more than 2 decimal places")
	}
	return nil
}
