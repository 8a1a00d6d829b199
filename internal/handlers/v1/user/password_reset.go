package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperr"
)

type ForgotPasswordInput struct {
	Body struct {
		Email string `json:"email"`
	}
}

type ResetPasswordInput struct {
	Body struct {
		Token    string `json:"token" doc:"Code from the reset email"`
		Password string `json:"password"`
	}
}

type passwordResetter interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// PasswordResetHandler handles the forgot and reset password flow.
type PasswordResetHandler struct {
	AuthService passwordResetter
}

func NewPasswordResetHandler(svc passwordResetter) *PasswordResetHandler {
	return &PasswordResetHandler{AuthService: svc}
}

func (h *PasswordResetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "forgot-password",
		Method:      http.MethodPost,
		Path:        "/v1/auth/forgot-password",
		Summary:     "Request a password reset",
		Description: "Emails a reset code valid for one hour.",
		Tags:        []string{"Auth"},
		Metadata:    rateLimited(),
	}, h.forgot)

	huma.Register(api, huma.Operation{
		OperationID: "reset-password",
		Method:      http.MethodPost,
		Path:        "/v1/auth/reset-password",
		Summary:     "Reset password",
		Tags:        []string{"Auth"},
		Metadata:    rateLimited(),
	}, h.reset)
}

func (h *PasswordResetHandler) forgot(ctx context.Context, input *ForgotPasswordInput) (*MessageOutput, error) {
	if err := h.AuthService.ForgotPassword(ctx, input.Body.Email); err != nil {
		return nil, apperr.ToHuma(err, "failed to start password reset")
	}
	return &MessageOutput{Body: MessageResponse{Message: "Password reset email sent"}}, nil
}

func (h *PasswordResetHandler) reset(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error) {
	if err := h.AuthService.ResetPassword(ctx, input.Body.Token, input.Body.Password); err != nil {
		return nil, apperr.ToHuma(err, "failed to reset password")
	}
	return &MessageOutput{Body: MessageResponse{Message: "Password reset successful"}}, nil
}
