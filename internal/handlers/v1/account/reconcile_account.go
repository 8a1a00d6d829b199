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

type Reconciliation struct {
	AccountID       string `json:"accountID"`
	Balance         string `json:"balance" doc:"Stored balance"`
	Adjustments     string `json:"adjustments" doc:"Opening balance plus manual edits"`
	LedgerTotal     string `json:"ledgerTotal" doc:"Net effect of every transaction on the account"`
	ExpectedBalance string `json:"expectedBalance" doc:"Adjustments plus ledger total"`
	Drift           string `json:"drift" doc:"Balance minus expected balance, 0 when consistent"`
	Transactions    int    `json:"transactions" doc:"Number of transactions touching the account"`
}

type ReconcileAccountOutput struct {
	Body Reconciliation
}

type accountReconciler interface {
	Reconcile(ctx context.Context, ownerID, id uuid.UUID) (*service.Reconciliation, error)
}

// ReconcileAccountHandler handles GET /v1/accounts/{id}/reconciliation.
type ReconcileAccountHandler struct {
	AccountService accountReconciler
}

func NewReconcileAccountHandler(svc accountReconciler) *ReconcileAccountHandler {
	return &ReconcileAccountHandler{AccountService: svc}
}

func (h *ReconcileAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}/reconciliation",
		Summary:     "Reconcile account",
		Description: "Recomputes the balance an account should hold from its transactions and reports any drift.",
		Tags:        []string{"Accounts"},
		Security:    auth.Secured(),
	}, h.handle)
}

func (h *ReconcileAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*ReconcileAccountOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := input.parse()
	if err != nil {
		return nil, err
	}

	rec, err := h.AccountService.Reconcile(ctx, ownerID, id)
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to reconcile account")
	}
	if !rec.Drift.IsZero() {
		logging.GetLogData(ctx).AddData("drift", rec.Drift.String())
	}

	return &ReconcileAccountOutput{Body: Reconciliation{
		AccountID:       rec.AccountID.String(),
		Balance:         rec.Balance.StringFixed(2),
		Adjustments:     rec.Adjustments.StringFixed(2),
		LedgerTotal:     rec.LedgerTotal.StringFixed(2),
		ExpectedBalance: rec.ExpectedBalance.StringFixed(2),
		Drift:           rec.Drift.StringFixed(2),
		Transactions:    rec.Transactions,
	}}, nil
}
