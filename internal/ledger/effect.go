package ledger

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Effect is the signed change a transaction makes to one account balance.
type Effect struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

func (i Income) Effects(amount decimal.Decimal) []Effect {
	return []Effect{{AccountID: i.Account, Delta: amount}}
}

func (e Expense) Effects(amount decimal.Decimal) []Effect {
	return []Effect{{AccountID: e.Account, Delta: amount.Neg()}}
}

func (t Transfer) Effects(amount decimal.Decimal) []Effect {
	return []Effect{
		{AccountID: t.From, Delta: amount.Neg()},
		{AccountID: t.To, Delta: amount},
	}
}

// Invert returns effects that undo the given ones.
func Invert(effects []Effect) []Effect {
	inverted := make([]Effect, len(effects))
	for i, effect := range effects {
		inverted[i] = Effect{AccountID: effect.AccountID, Delta: effect.Delta.Neg()}
	}
	return inverted
}

// NetFor sums the deltas of every effect that targets accountID.
func NetFor(accountID uuid.UUID, effects []Effect) decimal.Decimal {
	total := decimal.Zero
	for _, effect := range effects {
		if effect.AccountID == accountID {
			total = total.Add(effect.Delta)
		}
	}
	return total
}
