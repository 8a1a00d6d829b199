package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteAccount removes an account that no transaction references.
type DeleteAccount struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockOwnedAccounts(ctx, writer, d.OwnerID, d.AccountID); err != nil {
		return err
	}

	count, err := writer.Transaction.CountForAccount(ctx, d.AccountID)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("account is used by %d transactions", count)
	}

	if err = writer.Account.Delete(ctx, d.AccountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
