package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
)

// SecurityScheme is the name operations list in their Security requirement
// to be guarded by Middleware.
const SecurityScheme = "bearer"

type userIDKey struct{}

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user stored by Middleware.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}

// Middleware rejects requests to secured operations that lack a valid bearer
// token and stores the user id on the context of the rest.
func Middleware(api huma.API, tokens TokenParser) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "not authorized, token failed")
			return
		}

		logging.GetLogData(ctx.Context()).AddData("userID", userID.String())
		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecurityScheme]; ok {
			return true
		}
	}
	return false
}

// Secured is the Security value for operations that need a signed-in user.
func Secured() []map[string][]string {
	return []map[string][]string{{SecurityScheme: {}}}
}

// SecuritySchemes returns the OpenAPI components entry for the bearer scheme.
func SecuritySchemes() map[string]*huma.SecurityScheme {
	return map[string]*huma.SecurityScheme{
		SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
}

// RequireUserID returns the authenticated user or a 401 error for handlers
// reached without Middleware having run.
func RequireUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := UserID(ctx)
	if !ok {
		return uuid.Nil, huma.Error401Unauthorized("not authorized")
	}
	return userID, nil
}
