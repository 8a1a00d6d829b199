package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/service"
)

type SummaryInput struct {
	DateRangeQuery
}

type SummaryResponse struct {
	Income  string `json:"income" doc:"Total income"`
	Expense string `json:"expense" doc:"Total expense"`
	Balance string `json:"balance" doc:"Income minus expense"`
}

type SummaryOutput struct {
	Body SummaryResponse
}

type CategoryTotal struct {
	Category    string `json:"category"`
	TotalAmount string `json:"totalAmount"`
}

type CategorySummaryOutput struct {
	Body []CategoryTotal
}

type transactionSummarizer interface {
	Summary(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery) (*service.Summary, error)
	CategorySummary(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery) ([]service.CategoryTotal, error)
}

// SummaryHandler handles GET /v1/transactions/summary and
// GET /v1/transactions/category-summary.
type SummaryHandler struct {
	TransactionService transactionSummarizer
	Location           *time.Location
}

func NewSummaryHandler(svc transactionSummarizer, loc *time.Location) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc, Location: loc}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/summary",
		Summary:     "Income and expense summary",
		Description: "Totals income and expense in the date window. Transfers are not counted.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
	}, h.summary)

	huma.Register(api, huma.Operation{
		OperationID: "transaction-category-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/category-summary",
		Summary:     "Expense totals per category",
		Description: "Totals expenses per category in the date window, largest first.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
	}, h.categorySummary)
}

func (h *SummaryHandler) summary(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	query, err := parseDateRange(input.DateRangeQuery, h.Location)
	if err != nil {
		return nil, err
	}

	summary, err := h.TransactionService.Summary(ctx, ownerID, query)
	if err != nil {
		return nil, apperr.ToHuma(err, "aggregation failed")
	}

	return &SummaryOutput{Body: SummaryResponse{
		Income:  summary.Income.StringFixed(2),
		Expense: summary.Expense.StringFixed(2),
		Balance: summary.Balance.StringFixed(2),
	}}, nil
}

func (h *SummaryHandler) categorySummary(ctx context.Context, input *SummaryInput) (*CategorySummaryOutput, error) {
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	query, err := parseDateRange(input.DateRangeQuery, h.Location)
	if err != nil {
		return nil, err
	}

	totals, err := h.TransactionService.CategorySummary(ctx, ownerID, query)
	if err != nil {
		return nil, apperr.ToHuma(err, "category aggregation failed")
	}

	body := make([]CategoryTotal, len(totals))
	for i, total := range totals {
		body[i] = CategoryTotal{Category: total.Category, TotalAmount: total.TotalAmount.StringFixed(2)}
	}
	return &CategorySummaryOutput{Body: body}, nil
}
