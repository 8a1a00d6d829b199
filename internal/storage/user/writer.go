package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IUserWriter = (*Writer)(nil)

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

func (w *Writer) Create(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into(table, "name", "email", "password_hash"),
		im.Values(psql.Arg(create.Name), psql.Arg(create.Email), psql.Arg(create.PasswordHash)),
		im.Returning(columns...),
	)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*User]())
}

func (w *Writer) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	q := psql.Update(
		um.Table(table),
		um.SetCol("reset_token").ToArg(token),
		um.SetCol("reset_expires").ToArg(expires),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

func (w *Writer) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(table),
		um.SetCol("reset_token").To(psql.Raw("NULL")),
		um.SetCol("reset_expires").To(psql.Raw("NULL")),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdatePassword stores the new hash and invalidates any reset token.
func (w *Writer) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	q := psql.Update(
		um.Table(table),
		um.SetCol("password_hash").ToArg(passwordHash),
		um.SetCol("reset_token").To(psql.Raw("NULL")),
		um.SetCol("reset_expires").To(psql.Raw("NULL")),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
