package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/ratelimit"
	"github.com/carson-networks/ledger-server/internal/service"
)

var testUser = service.User{
	ID:        uuid.Must(uuid.FromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
	Name:      "Ada",
	Email:     "ada@example.com",
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, reg service.Registration) (*service.Session, error) {
	args := m.Called(ctx, reg)
	if s := args.Get(0); s != nil {
		return s.(*service.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if s := args.Get(0); s != nil {
		return s.(*service.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, id uuid.UUID) (*service.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*service.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewRegisterHandler(svc).Register(api)

		svc.On("Register", mock.Anything, service.Registration{
			Name: "Ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1",
		}).Return(&service.Session{User: testUser, Token: "signed"}, nil)

		resp := api.Post("/v1/auth/register", map[string]any{
			"name": "Ada", "email": "ada@example.com", "password": "secret1", "confirmPassword": "secret1",
		})
		assert.Equal(t, http.StatusCreated, resp.Code)

		var body SessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "signed", body.Token)
		assert.Equal(t, testUser.ID.String(), body.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewRegisterHandler(svc).Register(api)

		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperr.Conflict("user already exists"))

		resp := api.Post("/v1/auth/register", map[string]any{
			"name": "Ada", "email": "ada@example.com", "password": "secret1", "confirmPassword": "secret1",
		})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestSessionHandler(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewSessionHandler(svc).Register(api)

		svc.On("Login", mock.Anything, "ada@example.com", "secret1").
			Return(&service.Session{User: testUser, Token: "signed"}, nil)

		resp := api.Post("/v1/auth/login", map[string]any{"email": "ada@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"token":"signed"`)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewSessionHandler(svc).Register(api)

		svc.On("Login", mock.Anything, "ada@example.com", "wrong").
			Return(nil, apperr.Unauthenticated("invalid email or password"))

		resp := api.Post("/v1/auth/login", map[string]any{"email": "ada@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("logout", func(t *testing.T) {
		_, api := humatest.New(t)
		NewSessionHandler(new(mockAuthService)).Register(api)

		resp := api.Post("/v1/auth/logout", map[string]any{})
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Logged out successfully")
	})

	t.Run("me", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), testUser.ID)))
		})
		NewSessionHandler(svc).Register(api)

		user := testUser
		svc.On("Me", mock.Anything, testUser.ID).Return(&user, nil)

		resp := api.Get("/v1/auth/me")
		assert.Equal(t, http.StatusOK, resp.Code)

		var body User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body.Email)
		assert.Equal(t, "2024-01-02T03:04:05Z", body.CreatedAt)
	})

	t.Run("me without a user", func(t *testing.T) {
		_, api := humatest.New(t)
		NewSessionHandler(new(mockAuthService)).Register(api)

		resp := api.Get("/v1/auth/me")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestPasswordResetHandler(t *testing.T) {
	t.Run("forgot", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewPasswordResetHandler(svc).Register(api)

		svc.On("ForgotPassword", mock.Anything, "ada@example.com").Return(nil)

		resp := api.Post("/v1/auth/forgot-password", map[string]any{"email": "ada@example.com"})
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotContains(t, resp.Body.String(), "token")
	})

	t.Run("email failure", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewPasswordResetHandler(svc).Register(api)

		svc.On("ForgotPassword", mock.Anything, "ada@example.com").
			Return(apperr.EmailDelivery(errors.New("smtp down")))

		resp := api.Post("/v1/auth/forgot-password", map[string]any{"email": "ada@example.com"})
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})

	t.Run("reset", func(t *testing.T) {
		svc := new(mockAuthService)
		_, api := humatest.New(t)
		NewPasswordResetHandler(svc).Register(api)

		svc.On("ResetPassword", mock.Anything, "1234", "newsecret").
			Return(apperr.Validation("reset token is invalid or has expired"))

		resp := api.Post("/v1/auth/reset-password", map[string]any{"token": "1234", "password": "newsecret"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestRateLimitedOperations(t *testing.T) {
	_, api := humatest.New(t)
	NewRegisterHandler(new(mockAuthService)).Register(api)
	NewSessionHandler(new(mockAuthService)).Register(api)
	NewPasswordResetHandler(new(mockAuthService)).Register(api)

	limited := map[string]bool{}
	for _, item := range api.OpenAPI().Paths {
		for _, op := range []*huma.Operation{item.Get, item.Post} {
			if op != nil && op.Metadata[ratelimit.MetadataKey] == true {
				limited[op.OperationID] = true
			}
		}
	}
	assert.Equal(t, map[string]bool{
		"register": true, "login": true, "forgot-password": true, "reset-password": true,
	}, limited)
}
