package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type ListAccountsInput struct{}

type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"Accounts owned by the caller, oldest first"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

type accountLister interface {
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]service.Account, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every account owned by the caller.",
		Tags:        []string{"Accounts"},
		Security:    auth.Secured(),
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listAccountsMs")
	accounts, err := h.AccountService.ListAccounts(ctx, ownerID)
	stopTimer()
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to list accounts")
	}
	logData.AddData("accountCount", len(accounts))

	resp := ListAccountsResponseBody{Accounts: make([]Account, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = toAPIAccount(&accounts[i])
	}
	return &ListAccountsOutput{Body: resp}, nil
}
