package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
)

const runningMessage = "Money Manager API is running"

type pinger interface {
	Ping(ctx context.Context) error
}

type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}

type StatusOutput struct {
	Body StatusResponse
}

// Handler reports liveness on / and /health. /health also pings the database
// when one is set.
type Handler struct {
	Database pinger
}

func NewHandler(db pinger) *Handler {
	return &Handler{Database: db}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service banner",
		Tags:        []string{"Status"},
	}, h.root)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, h.health)
}

func (h *Handler) root(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusResponse{Status: "success", Message: runningMessage}}, nil
}

func (h *Handler) health(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	if h.Database != nil {
		stopTimer := logging.GetLogData(ctx).AddTiming("pingMs")
		err := h.Database.Ping(ctx)
		stopTimer()
		if err != nil {
			return nil, huma.Error503ServiceUnavailable("database unavailable", err)
		}
	}
	return &StatusOutput{Body: StatusResponse{Status: "success", Message: runningMessage}}, nil
}
