package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
)

type DeleteAccountOutput struct {
	Body struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
}

type accountDeleter interface {
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /v1/accounts/{id}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/accounts/{id}",
		Summary:     "Delete account",
		Description: "Removes an account that no transaction references.",
		Tags:        []string{"Accounts"},
		Security:    auth.Secured(),
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*DeleteAccountOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := input.parse()
	if err != nil {
		return nil, err
	}

	if err = h.AccountService.DeleteAccount(ctx, ownerID, id); err != nil {
		return nil, apperr.ToHuma(err, "failed to delete account")
	}

	out := &DeleteAccountOutput{}
	out.Body.ID = id.String()
	out.Body.Message = "Account removed"
	return out, nil
}
