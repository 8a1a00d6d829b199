package account

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// UpdateAccountBody lists the fields to change. Omitted fields keep their value.
type UpdateAccountBody struct {
	Name    *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"New display name"`
	Type    *string `json:"type,omitempty" enum:"bank,cash,credit,savings,other" doc:"New account type"`
	Balance *string `json:"balance,omitempty" doc:"New balance; recorded as a manual adjustment"`
}

type UpdateAccountInput struct {
	AccountIDInput
	Body UpdateAccountBody
}

type UpdateAccountOutput struct {
	Body Account
}

type accountUpdater interface {
	UpdateAccount(ctx context.Context, ownerID, id uuid.UUID, patch service.AccountPatch) (*service.Account, error)
}

// UpdateAccountHandler handles PUT /v1/accounts/{id}.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/accounts/{id}",
		Summary:     "Update account",
		Description: "Changes the name, type or balance of an account.",
		Tags:        []string{"Accounts"},
		Security:    auth.Secured(),
	}, h.handle)
}

func parseUpdateAccountBody(body *UpdateAccountBody) (service.AccountPatch, error) {
	patch := service.AccountPatch{
		Name: omit.FromPtr(body.Name),
	}
	if body.Type != nil {
		patch.Type = omit.From(account.AccountType(*body.Type))
	}
	if body.Balance != nil {
		balance, err := decimal.NewFromString(*body.Balance)
		if err != nil {
			return service.AccountPatch{}, huma.NewError(http.StatusBadRequest, "invalid balance", err)
		}
		patch.Balance = omit.From(balance)
	}
	return patch, nil
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := input.parse()
	if err != nil {
		return nil, err
	}
	patch, err := parseUpdateAccountBody(&input.Body)
	if err != nil {
		return nil, err
	}

	updated, err := h.AccountService.UpdateAccount(ctx, ownerID, id, patch)
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to update account")
	}
	return &UpdateAccountOutput{Body: toAPIAccount(updated)}, nil
}
