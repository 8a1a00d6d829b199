package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name    string `json:"name" minLength:"1" maxLength:"100" doc:"Display name"`
	Type    string `json:"type,omitempty" enum:"bank,cash,credit,savings,other" doc:"Account type, cash when omitted"`
	Balance string `json:"balance,omitempty" doc:"Opening balance as a decimal, 0 when omitted"`
}

type CreateAccountInput struct {
	Body CreateAccountBody
}

type CreateAccountOutput struct {
	Status int
	Body   Account
}

type accountCreator interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID, create service.AccountCreate) (*service.Account, error)
}

// CreateAccountHandler handles POST /v1/accounts.
type CreateAccountHandler struct {
	AccountService accountCreator
}

func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/accounts",
		Summary:       "Create account",
		Description:   "Opens an account with an optional starting balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
		Security:      auth.Secured(),
	}, h.handle)
}

// parseCreateAccountBody parses the API body. Name and type rules are
// enforced by the service.
func parseCreateAccountBody(body *CreateAccountBody) (service.AccountCreate, error) {
	balance := decimal.Zero
	if body.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(body.Balance)
		if err != nil {
			return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid balance", err)
		}
	}
	return service.AccountCreate{
		Name:    body.Name,
		Type:    account.AccountType(body.Type),
		Balance: balance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	create, err := parseCreateAccountBody(&input.Body)
	if err != nil {
		return nil, err
	}

	created, err := h.AccountService.CreateAccount(ctx, ownerID, create)
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to create account")
	}

	return &CreateAccountOutput{Status: http.StatusCreated, Body: toAPIAccount(created)}, nil
}
