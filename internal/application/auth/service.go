package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/infrastructure/smtp"
	"github.com/ALDWIL/doxrep/internal/pkg/id"
	"github.com/rs/zerolog"
)

// VerificationStore is the slice of the verification-code store this service needs.
type VerificationStore interface {
	Create(ctx context.Context, email, code string, expiresAt time.Time) error
	Claim(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email, code string) error
}

// UserStore upserts users on successful verification.
type UserStore interface {
	Upsert(ctx context.Context, newID, email string, now time.Time) (*domain.User, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
}

// TokenSigner mints the bearer credential embedded in a session.
type TokenSigner interface {
	Sign(userID, email string) (string, error)
	Expiry() time.Duration
}

// Service implements the one-time-code login flow.
type Service interface {
	// RequestCode issues a one-time code to email. Either exactly one code
	// row exists afterwards (email delivered) or none (delivery failed).
	RequestCode(ctx context.Context, email string) error
	// VerifyCode exchanges a valid (email, code) pair for a session. A code
	// can succeed at most once.
	VerifyCode(ctx context.Context, email, code string) (*domain.User, string, error)
}

type service struct {
	verifications VerificationStore
	users         UserStore
	sessions      SessionStore
	signer        TokenSigner
	mailer        smtp.Mailer
	codeTTL       time.Duration
	log           zerolog.Logger
}

// Deps bundles the service's collaborators.
type Deps struct {
	Verifications VerificationStore
	Users         UserStore
	Sessions      SessionStore
	Signer        TokenSigner
	Mailer        smtp.Mailer
	CodeTTL       time.Duration
	Logger        zerolog.Logger
}

func NewService(d Deps) Service {
	return &service{
		verifications: d.Verifications,
		users:         d.Users,
		sessions:      d.Sessions,
		signer:        d.Signer,
		mailer:        d.Mailer,
		codeTTL:       d.CodeTTL,
		log:           d.Logger,
	}
}

func (s *service) RequestCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	expiresAt := time.Now().Add(s.codeTTL)

	if err := s.verifications.Create(ctx, email, code, expiresAt); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	subject, body, err := smtp.VerificationEmail(code, int(s.codeTTL.Minutes()))
	if err == nil {
		err = s.mailer.SendEmail(email, subject, body)
	}
	if err != nil {
		// No code may survive without a delivered email.
		if delErr := s.verifications.Delete(ctx, email, code); delErr != nil {
			s.log.Error().Err(delErr).Str("email", email).Msg("failed to roll back undelivered code")
		}
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) (*domain.User, string, error) {
	if _, err := s.verifications.Claim(ctx, email, code); err != nil {
		// Only a missing claimable row is an authentication failure; a store
		// error must surface as such so the caller answers 500, not 401.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("claim verification code: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Upsert(ctx, id.New(), email, now)
	if err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.signer.Sign(user.UserID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	sess := &domain.Session{
		SessionID: id.New(),
		UserID:    user.UserID,
		Token:     token,
		ExpiresAt: now.Add(s.signer.Expiry()),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}
	return user, token, nil
}

// generateCode draws a uniform 6-digit decimal code from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
