package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

type RegisterUser struct {
	Name         string
	Email        string
	PasswordHash string

	Result *user.User
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.User.FindByEmail(ctx, r.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return apperr.Conflict("user already exists")
	}

	created, err := writer.User.Create(ctx, &user.UserCreate{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	r.Result = created
	return nil
}
