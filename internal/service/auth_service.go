package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/mail"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const (
	minPasswordLength = 6
	// bcrypt only accepts passwords up to 72 bytes.
	maxPasswordBytes = 72
	resetTokenTTL     = time.Hour
)

var errInvalidCredentials = apperr.Unauthenticated("invalid email or password")

// AuthService handles registration, login and password resets.
type AuthService struct {
	reader      *storage.Reader
	processor   Processor
	tokens      TokenIssuer
	mailer      Mailer
	frontendURL string
	now         func() time.Time
	hashCost    int
}

func NewAuthService(reader *storage.Reader, processor Processor, tokens TokenIssuer, mailer Mailer, frontendURL string, now func() time.Time) *AuthService {
	return &AuthService{
		reader:      reader,
		processor:   processor,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         now,
		hashCost:    bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, reg Registration) (*Session, error) {
	name := strings.TrimSpace(reg.Name)
	email := normalizeEmail(reg.Email)
	if name == "" || email == "" || reg.Password == "" || reg.ConfirmPassword == "" {
		return nil, apperr.Validation("please provide all fields")
	}
	if reg.Password != reg.ConfirmPassword {
		return nil, apperr.Validation("passwords do not match")
	}
	if err := checkPassword(reg.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	action := &actions.RegisterUser{Name: name, Email: email, PasswordHash: string(hash)}
	if err = s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return s.session(userFromStorage(action.Result))
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("please provide email and password")
	}

	found, err := s.reader.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	return s.session(userFromStorage(found))
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	found, err := s.reader.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("user")
	}
	converted := userFromStorage(found)
	return &converted, nil
}

// ForgotPassword stores a short-lived reset code for the user and emails it.
// When the email cannot be sent the code is cleared again.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	found, err := s.reader.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if found == nil {
		return apperr.NotFound("user")
	}

	code, err := resetCode()
	if err != nil {
		return err
	}
	err = s.processor.Process(ctx, &actions.SetResetToken{
		UserID:  found.ID,
		Token:   code,
		Expires: s.now().Add(resetTokenTTL),
	})
	if err != nil {
		return err
	}

	link := s.frontendURL + "/reset-password?token=" + code
	if err = s.mailer.Send(ctx, mail.PasswordResetMessage(found.Email, code, link, resetTokenTTL)); err != nil {
		if clearErr := s.processor.Process(ctx, &actions.ClearResetToken{UserID: found.ID}); clearErr != nil {
			logging.GetLogData(ctx).Log().WithError(clearErr).Error("AuthService.ForgotPassword.clearToken")
		}
		return apperr.EmailDelivery(err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.Validation("reset token is required")
	}
	if err := checkPassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.processor.Process(ctx, &actions.ResetPassword{
		Token:        strings.TrimSpace(token),
		PasswordHash: string(hash),
		Now:          s.now(),
	})
}

func (s *AuthService) session(u User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return apperr.Validation("password cannot be longer than %d bytes", maxPasswordBytes)
	}
	return nil
}

// resetCode returns a random four digit code.
func resetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("reset code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
