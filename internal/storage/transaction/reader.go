package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var _ ITransactionReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table).As("t"),
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
	)
	return findOne(ctx, r.exec, q)
}

// List returns the transactions matching the filter, newest first, with the
// names of the referenced accounts. When filter.Limit is set one extra row is
// fetched so the caller can tell whether another page exists.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.Columns("src.name AS source_account_name", "dst.name AS destination_account_name"),
		sm.From(table).As("t"),
		sm.InnerJoin("accounts").As("src").On(
			psql.Quote("src", "id").EQ(psql.Quote("t", "source_account_id")),
		),
		sm.LeftJoin("accounts").As("dst").On(
			psql.Quote("dst", "id").EQ(psql.Quote("t", "destination_account_id")),
		),
		sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(filter.OwnerID))),
	}
	queryMods = append(queryMods, dateWhere(filter.Dates)...)
	if filter.Category != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "category").EQ(psql.Arg(filter.Category))))
	}
	if filter.Division != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "division").EQ(psql.Arg(string(filter.Division)))))
	}
	if filter.Type != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "type").EQ(psql.Arg(string(filter.Type)))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// ListForAccount returns every transaction that uses the account as source or destination.
func (r *Reader) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table).As("t"),
		sm.Where(psql.Or(
			psql.Quote("t", "source_account_id").EQ(psql.Arg(accountID)),
			psql.Quote("t", "destination_account_id").EQ(psql.Arg(accountID)),
		)),
		sm.OrderBy(psql.Quote("t", "created_at")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}

func (r *Reader) CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(table).As("t"),
		sm.Where(psql.Or(
			psql.Quote("t", "source_account_id").EQ(psql.Arg(accountID)),
			psql.Quote("t", "destination_account_id").EQ(psql.Arg(accountID)),
		)),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

// TotalsByType sums the owner's amounts per transaction type.
func (r *Reader) TotalsByType(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]TypeTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("t.type", "COALESCE(SUM(t.amount), 0) AS total"),
		sm.From(table).As("t"),
		sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(ownerID))),
	}
	queryMods = append(queryMods, dateWhere(dates)...)
	queryMods = append(queryMods, sm.GroupBy("t.type"))

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[TypeTotal]())
}

// ExpenseTotalsByCategory sums the owner's expenses per category, largest first.
func (r *Reader) ExpenseTotalsByCategory(ctx context.Context, ownerID uuid.UUID, dates ledger.DateFilter) ([]CategoryTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("t.category", "SUM(t.amount) AS total_amount"),
		sm.From(table).As("t"),
		sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("t", "type").EQ(psql.Arg(string(ledger.TypeExpense)))),
	}
	queryMods = append(queryMods, dateWhere(dates)...)
	queryMods = append(queryMods,
		sm.GroupBy("t.category"),
		sm.OrderBy("total_amount").Desc(),
		sm.OrderBy("t.category").Asc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[CategoryTotal]())
}

func dateWhere(dates ledger.DateFilter) []bob.Mod[*dialect.SelectQuery] {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	createdAt := psql.Quote("t", "created_at")
	if dates.From != nil {
		queryMods = append(queryMods, sm.Where(createdAt.GTE(psql.Arg(*dates.From))))
	}
	if dates.To != nil {
		if dates.ToInclusive {
			queryMods = append(queryMods, sm.Where(createdAt.LTE(psql.Arg(*dates.To))))
		} else {
			queryMods = append(queryMods, sm.Where(createdAt.LT(psql.Arg(*dates.To))))
		}
	}
	return queryMods
}

func findOne(ctx context.Context, exec bob.Executor, q bob.Query) (*Transaction, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
