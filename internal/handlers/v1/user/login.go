package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/service"
)

type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginOutput struct {
	Body SessionResponse
}

type MeOutput struct {
	Body User
}

type MessageOutput struct {
	Body MessageResponse
}

type sessionService interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Me(ctx context.Context, id uuid.UUID) (*service.User, error)
}

// SessionHandler handles login, logout and the current user lookup.
type SessionHandler struct {
	AuthService sessionService
}

func NewSessionHandler(svc sessionService) *SessionHandler {
	return &SessionHandler{AuthService: svc}
}

func (h *SessionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for an access token.",
		Tags:        []string{"Auth"},
		Metadata:    rateLimited(),
	}, h.login)

	// Tokens are stateless, logging out only tells the client to drop its copy.
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/auth/logout",
		Summary:     "Log out",
		Tags:        []string{"Auth"},
	}, h.logout)

	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/v1/auth/me",
		Summary:     "Current user",
		Tags:        []string{"Auth"},
		Security:    auth.Secured(),
	}, h.me)
}

func (h *SessionHandler) login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	session, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to log in")
	}
	return &LoginOutput{Body: toSessionResponse(session)}, nil
}

func (h *SessionHandler) logout(_ context.Context, _ *struct{}) (*MessageOutput, error) {
	return &MessageOutput{Body: MessageResponse{Message: "Logged out successfully"}}, nil
}

func (h *SessionHandler) me(ctx context.Context, _ *struct{}) (*MeOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	found, err := h.AuthService.Me(ctx, userID)
	if err != nil {
		return nil, apperr.ToHuma(err, "failed to load user")
	}
	return &MeOutput{Body: toAPIUser(found)}, nil
}
