package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransactionsCursor represents a pagination cursor in responses. Pass
// its values back as the position and limit query parameters.
type ListTransactionsCursor struct {
	Position int `json:"position" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	DateRangeQuery
	Category string `query:"category" doc:"Only this category"`
	Division string `query:"division" doc:"Only office or personal"`
	Type     string `query:"type" doc:"Only income, expense or transfer"`
	Position int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size; 0 returns every match"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Transactions, newest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
	Location           *time.Location
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister, loc *time.Location) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc, Location: loc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions, newest first, filtered by date window, category, division and type.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// Without a limit no cursor is used and every match is returned.
func parseListTransactionsInput(input *ListTransactionsInput, loc *time.Location) (service.TransactionQuery, *service.TransactionCursor, error) {
	query, err := parseDateRange(input.DateRangeQuery, loc)
	if err != nil {
		return service.TransactionQuery{}, nil, err
	}
	query.Category = input.Category
	query.Division = ledger.Division(input.Division)
	query.Type = ledger.TransactionType(input.Type)

	if input.Limit == 0 {
		return query, nil, nil
	}
	return query, &service.TransactionCursor{Position: input.Position, Limit: input.Limit}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	query, cursor, err := parseListTransactionsInput(input, h.Location)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, ownerID, query, cursor)
	stopTimer()
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i := range transactions {
		resp.Transactions[i] = toAPITransaction(&transactions[i])
	}
	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
