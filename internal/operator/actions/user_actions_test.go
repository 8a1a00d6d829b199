package actions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/apperr"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	action := &RegisterUser{Name: "Ann", Email: "ann@example.com", PasswordHash: "hash"}
	require.NoError(t, action.Perform(ctx, store.writer()))
	assert.Equal(t, "ann@example.com", action.Result.Email)

	err := (&RegisterUser{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"}).Perform(ctx, store.writer())
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	register := &RegisterUser{Name: "Ann", Email: "ann@example.com", PasswordHash: "old"}
	require.NoError(t, register.Perform(ctx, store.writer()))
	id := register.Result.ID

	require.NoError(t, (&SetResetToken{UserID: id, Token: "1234", Expires: now.Add(time.Hour)}).Perform(ctx, store.writer()))

	expired := &ResetPassword{Token: "1234", PasswordHash: "new", Now: now.Add(2 * time.Hour)}
	assert.ErrorIs(t, expired.Perform(ctx, store.writer()), apperr.ErrValidation)

	wrong := &ResetPassword{Token: "9999", PasswordHash: "new", Now: now}
	assert.ErrorIs(t, wrong.Perform(ctx, store.writer()), apperr.ErrValidation)

	require.NoError(t, (&ResetPassword{Token: "1234", PasswordHash: "new", Now: now}).Perform(ctx, store.writer()))
	assert.Equal(t, "new", store.users[id].PasswordHash)
	assert.False(t, store.users[id].ResetToken.Valid)

	require.NoError(t, (&SetResetToken{UserID: id, Token: "5678", Expires: now.Add(time.Hour)}).Perform(ctx, store.writer()))
	require.NoError(t, (&ClearResetToken{UserID: id}).Perform(ctx, store.writer()))
	assert.False(t, store.users[id].ResetToken.Valid)
}
