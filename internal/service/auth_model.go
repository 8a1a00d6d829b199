package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/mail"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Mailer delivers outgoing email.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// User represents a user in the service layer. It never carries the password hash.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Session is a user together with a freshly issued access token.
type Session struct {
	User  User
	Token string
}

type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func userFromStorage(row *user.User) User {
	return User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
}
