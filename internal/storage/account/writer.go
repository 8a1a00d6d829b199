package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

var _ IAccountWriter = (*Writer)(nil)

var errAccountMissing = errors.New("account row missing")

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate reads the account and locks its row until the
// surrounding transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	return findOne(ctx, w.tx, q)
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(table, "owner_id", "name", "type", "balance", "adjustments"),
		im.Values(
			psql.Arg(create.OwnerID),
			psql.Arg(create.Name),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Balance),
			psql.Arg(create.Balance),
		),
		im.Returning(columns...),
	)
	return findOne(ctx, w.tx, q)
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(table),
		um.SetCol("updated_at").To(psql.Raw("now()")),
	}
	if name, ok := update.Name.Get(); ok {
		mods = append(mods, um.SetCol("name").ToArg(name))
	}
	if accountType, ok := update.Type.Get(); ok {
		mods = append(mods, um.SetCol("type").ToArg(string(accountType)))
	}
	if balance, ok := update.Balance.Get(); ok {
		mods = append(mods, um.SetCol("balance").ToArg(balance))
	}
	if adjustments, ok := update.Adjustments.Get(); ok {
		mods = append(mods, um.SetCol("adjustments").ToArg(adjustments))
	}
	mods = append(mods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	return findOne(ctx, w.tx, psql.Update(mods...))
}

// AddToBalance increments the balance in place and returns the updated row.
func (w *Writer) AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Account, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("balance").To(psql.Raw("balance + ?", delta)),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	row, err := findOne(ctx, w.tx, q)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("add to balance %s: %w", id, errAccountMissing)
	}
	return row, nil
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Returning("id"),
	)
	row, err := findOne(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("delete %s: %w", id, errAccountMissing)
	}
	return nil
}
