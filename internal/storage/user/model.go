package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
)

const table = "users"

var columns = []any{"id", "name", "email", "password_hash", "reset_token", "reset_expires", "created_at", "updated_at"}

// User represents a user record.
type User struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	ResetToken   sql.NullString `db:"reset_token"`
	ResetExpires sql.NullTime   `db:"reset_expires"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// UserCreate is the input for registering a user.
type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
}

// IUserReader defines the read operations on users.
// Finders return a nil user and nil error when no row matches.
type IUserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
}

// IUserWriter defines the user operations available inside a storage transaction.
type IUserWriter interface {
	IUserReader
	Create(ctx context.Context, create *UserCreate) (*User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
