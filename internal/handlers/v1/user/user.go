// Package user serves registration, login and password reset endpoints.
package user

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ratelimit"
	"github.com/carson-networks/ledger-server/internal/service"
)

// User is the API response model for the authenticated user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty" doc:"RFC3339 registration time"`
}

// SessionResponse is a user together with their access token.
type SessionResponse struct {
	ID    string `json:"id" doc:"User UUID"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token" doc:"Bearer token for the Authorization header"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func rateLimited() map[string]any {
	return map[string]any{ratelimit.MetadataKey: true}
}

func toSessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		ID:    s.User.ID.String(),
		Name:  s.User.Name,
		Email: s.User.Email,
		Token: s.Token,
	}
}

func toAPIUser(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
