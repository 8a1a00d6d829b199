package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UpdateTransaction replaces every field of a transaction. The old effect is
// reverted on the old accounts before the new one is applied, so changing
// amount, type or accounts keeps every balance consistent.
type UpdateTransaction struct {
	OwnerID       uuid.UUID
	TransactionID uuid.UUID
	Fields        ledger.Fields

	Result *transaction.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedTransaction(ctx, writer, u.OwnerID, u.TransactionID)
	if err != nil {
		return err
	}

	entry, err := ledger.Parse(u.Fields)
	if err != nil {
		return err
	}

	oldEntry, err := existing.Entry()
	if err != nil {
		return fmt.Errorf("stored transaction %s: %w", existing.ID, err)
	}

	touched := append(oldEntry.Accounts(), entry.Accounts()...)
	if _, err = lockOwnedAccounts(ctx, writer, u.OwnerID, touched...); err != nil {
		return err
	}

	if err = applyEffects(ctx, writer, ledger.Invert(oldEntry.Effects())); err != nil {
		return err
	}

	updated, err := writer.Transaction.Update(ctx, existing.ID, entry.Fields())
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if err = applyEffects(ctx, writer, entry.Effects()); err != nil {
		return err
	}

	u.Result = updated
	return nil
}

// findOwnedTransaction locks the transaction row and separates a missing row
// from one that belongs to someone else.
func findOwnedTransaction(ctx context.Context, writer *storage.Writer, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("transaction")
	}
	if existing.OwnerID != ownerID {
		return nil, apperr.Forbidden("transaction")
	}
	return existing, nil
}
