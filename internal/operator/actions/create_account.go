package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccount opens an account. The starting balance is recorded as the
// first adjustment.
type CreateAccount struct {
	OwnerID         uuid.UUID
	Name            string
	Type            account.AccountType
	StartingBalance decimal.Decimal

	Result *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Account.Create(ctx, &account.AccountCreate{
		OwnerID: c.OwnerID,
		Name:    c.Name,
		Type:    c.Type,
		Balance: c.StartingBalance,
	})
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	c.Result = created
	return nil
}
