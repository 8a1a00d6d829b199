package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CreateTransaction records a new transaction and applies its balance effect.
type CreateTransaction struct {
	OwnerID uuid.UUID
	Fields  ledger.Fields

	Result *transaction.Transaction
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	entry, err := ledger.Parse(c.Fields)
	if err != nil {
		return err
	}

	if _, err = lockOwnedAccounts(ctx, writer, c.OwnerID, entry.Accounts()...); err != nil {
		return err
	}

	created, err := writer.Transaction.Insert(ctx, c.OwnerID, entry.Fields())
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err = applyEffects(ctx, writer, entry.Effects()); err != nil {
		return err
	}

	c.Result = created
	return nil
}
