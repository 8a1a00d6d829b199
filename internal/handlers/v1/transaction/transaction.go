package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                     string `json:"id" doc:"Transaction UUID"`
	Type                   string `json:"type" doc:"income, expense or transfer"`
	Amount                 string `json:"amount" doc:"Decimal amount"`
	SourceAccountID        string `json:"sourceAccountID" doc:"Account UUID the money comes from, or goes to for income"`
	SourceAccountName      string `json:"sourceAccountName,omitempty" doc:"Name of the source account"`
	DestinationAccountID   string `json:"destinationAccountID,omitempty" doc:"Account UUID receiving a transfer"`
	DestinationAccountName string `json:"destinationAccountName,omitempty" doc:"Name of the destination account"`
	Category               string `json:"category" doc:"Category, always Transfer for transfers"`
	Division               string `json:"division" doc:"office or personal"`
	Description            string `json:"description" doc:"Free text description"`
	CreatedAt              string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt              string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	Type                 string `json:"type" enum:"income,expense,transfer" doc:"Transaction type"`
	Amount               string `json:"amount" doc:"Decimal amount greater than 0 with at most 2 decimal places"`
	Category             string `json:"category,omitempty" maxLength:"100" doc:"Required for income and expense, ignored for transfers"`
	Division             string `json:"division" enum:"office,personal" doc:"Division the transaction belongs to"`
	Description          string `json:"description" minLength:"1" maxLength:"100" doc:"Description"`
	SourceAccountID      string `json:"sourceAccountID" format:"uuid" doc:"Source account UUID"`
	DestinationAccountID string `json:"destinationAccountID,omitempty" doc:"Destination account UUID, required for transfers"`
}

// DateRangeQuery selects a date window by explicit days or a rolling period.
type DateRangeQuery struct {
	From   string `query:"from" doc:"First day included, YYYY-MM-DD"`
	To     string `query:"to" doc:"Last day included, YYYY-MM-DD"`
	Period string `query:"period" doc:"weekly, monthly or yearly; ignored when from or to is set"`
}

// parseTransactionBody parses and validates the API body into ledger fields.
// Type specific rules are left to the ledger.
func parseTransactionBody(body *TransactionBody) (ledger.Fields, error) {
	sourceID, err := uuid.FromString(body.SourceAccountID)
	if err != nil {
		return ledger.Fields{}, huma.NewError(http.StatusBadRequest, "invalid sourceAccountID", err)
	}

	var destinationID uuid.NullUUID
	if body.DestinationAccountID != "" {
		id, err := uuid.FromString(body.DestinationAccountID)
		if err != nil {
			return ledger.Fields{}, huma.NewError(http.StatusBadRequest, "invalid destinationAccountID", err)
		}
		destinationID = uuid.NullUUID{UUID: id, Valid: true}
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return ledger.Fields{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	return ledger.Fields{
		Type:                 ledger.TransactionType(body.Type),
		Amount:               amount,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Category:             body.Category,
		Division:             ledger.Division(body.Division),
		Description:          body.Description,
	}, nil
}

// parseDateRange reads the window parameters in loc.
func parseDateRange(query DateRangeQuery, loc *time.Location) (service.TransactionQuery, error) {
	from, err := ledger.ParseDate(query.From, loc)
	if err != nil {
		return service.TransactionQuery{}, huma.NewError(http.StatusBadRequest, "invalid from", err)
	}
	to, err := ledger.ParseDate(query.To, loc)
	if err != nil {
		return service.TransactionQuery{}, huma.NewError(http.StatusBadRequest, "invalid to", err)
	}
	return service.TransactionQuery{
		From:   from,
		To:     to,
		Period: ledger.Period(query.Period),
	}, nil
}

func toAPITransaction(tx *service.Transaction) Transaction {
	converted := Transaction{
		ID:                     tx.ID.String(),
		Type:                   string(tx.Type),
		Amount:                 tx.Amount.StringFixed(2),
		SourceAccountID:        tx.SourceAccountID.String(),
		SourceAccountName:      tx.SourceAccountName,
		DestinationAccountName: tx.DestinationAccountName,
		Category:               tx.Category,
		Division:               string(tx.Division),
		Description:            tx.Description,
		CreatedAt:              tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.DestinationAccountID.Valid {
		converted.DestinationAccountID = tx.DestinationAccountID.UUID.String()
	}
	return converted
}
