package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Processor runs an action inside one database transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Auth        *AuthService
}

type Deps struct {
	Reader    *storage.Reader
	Processor Processor
	Tokens    TokenIssuer
	Mailer    Mailer
	Location  *time.Location
	// FrontendURL is the base of the link sent in password reset emails.
	FrontendURL string
}

// NewService creates a new Service from its dependencies.
func NewService(deps Deps) *Service {
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	clock := func() time.Time { return time.Now().In(location) }

	return &Service{
		Transaction: NewTransactionService(deps.Reader, deps.Processor, clock),
		Account:     NewAccountService(deps.Reader, deps.Processor),
		Auth:        NewAuthService(deps.Reader, deps.Processor, deps.Tokens, deps.Mailer, deps.FrontendURL, clock),
	}
}
