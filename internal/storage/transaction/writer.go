package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var _ ITransactionWriter = (*Writer)(nil)

var errTransactionMissing = errors.New("transaction row missing")

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

// FindByIDForUpdate reads the transaction and locks its row until the
// surrounding transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table).As("t"),
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	return findOne(ctx, w.tx, q)
}

func (w *Writer) Insert(ctx context.Context, ownerID uuid.UUID, fields ledger.Fields) (*Transaction, error) {
	q := psql.Insert(
		im.Into(table, "owner_id", "type", "amount", "source_account_id", "destination_account_id",
			"category", "division", "description"),
		im.Values(
			psql.Arg(ownerID),
			psql.Arg(string(fields.Type)),
			psql.Arg(fields.Amount),
			psql.Arg(fields.SourceAccountID),
			psql.Arg(fields.DestinationAccountID),
			psql.Arg(fields.Category),
			psql.Arg(string(fields.Division)),
			psql.Arg(fields.Description),
		),
		im.Returning(returningColumns...),
	)
	row, err := findOne(ctx, w.tx, q)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("insert: %w", errTransactionMissing)
	}
	return row, nil
}

// Update replaces every mutable column of the transaction.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, fields ledger.Fields) (*Transaction, error) {
	q := psql.Update(
		um.Table(table),
		um.SetCol("type").ToArg(string(fields.Type)),
		um.SetCol("amount").ToArg(fields.Amount),
		um.SetCol("source_account_id").ToArg(fields.SourceAccountID),
		um.SetCol("destination_account_id").ToArg(fields.DestinationAccountID),
		um.SetCol("category").ToArg(fields.Category),
		um.SetCol("division").ToArg(string(fields.Division)),
		um.SetCol("description").ToArg(fields.Description),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(returningColumns...),
	)
	row, err := findOne(ctx, w.tx, q)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("update %s: %w", id, errTransactionMissing)
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
		return fmt.Errorf("delete %s: %w", id, errTransactionMissing)
	}
	return nil
}
