package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransaction reverts a transaction's effect and removes it.
type DeleteTransaction struct {
	OwnerID       uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedTransaction(ctx, writer, d.OwnerID, d.TransactionID)
	if err != nil {
		return err
	}

	entry, err := existing.Entry()
	if err != nil {
		return fmt.Errorf("stored transaction %s: %w", existing.ID, err)
	}

	if _, err = lockOwnedAccounts(ctx, writer, d.OwnerID, entry.Accounts()...); err != nil {
		return err
	}

	if err = applyEffects(ctx, writer, ledger.Invert(entry.Effects())); err != nil {
		return err
	}

	if err = writer.Transaction.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
