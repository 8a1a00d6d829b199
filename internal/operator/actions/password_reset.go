package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type SetResetToken struct {
	UserID  uuid.UUID
	Token   string
	Expires time.Time
}

func (s *SetResetToken) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.User.SetResetToken(ctx, s.UserID, s.Token, s.Expires)
}

type ClearResetToken struct {
	UserID uuid.UUID
}

func (c *ClearResetToken) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.User.ClearResetToken(ctx, c.UserID)
}

// ResetPassword swaps the password of the user holding an unexpired reset
// token. The token is consumed.
type ResetPassword struct {
	Token        string
	PasswordHash string
	Now          time.Time
}

func (r *ResetPassword) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.User.FindByResetToken(ctx, r.Token, r.Now)
	if err != nil {
		return err
	}
	if found == nil {
		return apperr.Validation("reset token is invalid or has expired")
	}

	return writer.User.UpdatePassword(ctx, found.ID, r.PasswordHash)
}
