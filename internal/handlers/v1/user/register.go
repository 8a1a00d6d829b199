package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type RegisterBody struct {
	Name            string `json:"name" maxLength:"100"`
	Email           string `json:"email" maxLength:"254"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterInput struct {
	Body RegisterBody
}

type RegisterOutput struct {
	Status int
	Body   SessionResponse
}

type registrar interface {
	Register(ctx context.Context, reg service.Registration) (*service.Session, error)
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AuthService registrar
}

func NewRegisterHandler(svc registrar) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/v1/auth/register",
		Summary:       "Register",
		Description:   "Creates a user and returns an access token.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
		Metadata:      rateLimited(),
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	session, err := h.AuthService.Register(ctx, service.Registration{
		Name:            input.Body.Name,
		Email:           input.Body.Email,
		Password:        input.Body.Password,
		ConfirmPassword: input.Body.ConfirmPassword,
	})
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to register")
	}
	logging.GetLogData(ctx).AddData("userID", session.User.ID.String())

	return &RegisterOutput{Status: http.StatusCreated, Body: toSessionResponse(session)}, nil
}
