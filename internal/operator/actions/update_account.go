package actions

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// UpdateAccount edits an account. A manual balance edit moves adjustments by
// the same amount so the ledger-derived part of the balance is unchanged.
type UpdateAccount struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
	Name      omit.Val[string]
	Type      omit.Val[account.AccountType]
	Balance   omit.Val[decimal.Decimal]

	Result *account.Account
}

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	locked, err := lockOwnedAccounts(ctx, writer, u.OwnerID, u.AccountID)
	if err != nil {
		return err
	}
	current := locked[u.AccountID]

	update := &account.AccountUpdate{
		Name: u.Name,
		Type: u.Type,
	}
	if balance, ok := u.Balance.Get(); ok {
		update.Balance = omit.From(balance)
		update.Adjustments = omit.From(current.Adjustments.Add(balance.Sub(current.Balance)))
	}

	updated, err := writer.Account.Update(ctx, u.AccountID, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	u.Result = updated
	return nil
}
