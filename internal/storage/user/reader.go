package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IUserReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, psql.Quote("email").EQ(psql.Arg(email)))
}

// FindByResetToken returns the user holding token if it has not expired at now.
func (r *Reader) FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error) {
	return r.findOne(ctx,
		psql.Quote("reset_token").EQ(psql.Arg(token)),
		psql.Quote("reset_expires").GT(psql.Arg(now)),
	)
}

func (r *Reader) findOne(ctx context.Context, where ...bob.Expression) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(table),
		sm.Where(psql.And(where...)),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
