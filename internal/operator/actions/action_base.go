package actions

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// IAction is a unit of work that the operator runs inside one database
// transaction. Perform returning an error rolls the whole unit back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// lockOwnedAccounts locks every listed account row and checks that the
// caller owns it. Rows are locked in id order so two actions touching the
// same pair of accounts cannot deadlock.
func lockOwnedAccounts(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int {
		return bytes.Compare(a.Bytes(), b.Bytes())
	})
	ordered = slices.Compact(ordered)

	locked := make(map[uuid.UUID]*account.Account, len(ordered))
	for _, id := range ordered {
		acc, err := writer.Account.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lock account %s: %w", id, err)
		}
		if acc == nil {
			return nil, apperr.NotFound("account")
		}
		if acc.OwnerID != ownerID {
			return nil, apperr.Forbidden("account")
		}
		locked[id] = acc
	}
	return locked, nil
}

// applyEffects adds each effect's delta to its account balance.
func applyEffects(ctx context.Context, writer *storage.Writer, effects []ledger.Effect) error {
	for _, effect := range effects {
		if _, err := writer.Account.AddToBalance(ctx, effect.AccountID, effect.Delta); err != nil {
			return fmt.Errorf("apply effect to %s: %w", effect.AccountID, err)
		}
	}
	return nil
}
