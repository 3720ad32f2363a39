package http

import (
	"github.com/ALDWIL/doxrep/internal/infrastructure/postgres"
	s3infra "github.com/ALDWIL/doxrep/internal/infrastructure/s3"
	"github.com/ALDWIL/doxrep/internal/infrastructure/smtp"

	jwtinfra "github.com/ALDWIL/doxrep/internal/infrastructure/jwt"
	"github.com/rs/zerolog"
)

// Deps holds all infrastructure dependencies for the router. Everything is
// constructed in main and injected; handlers never reach for globals.
type Deps struct {
	VerificationRepo *postgres.VerificationRepo
	UserRepo         *postgres.UserRepo
	SessionRepo      *postgres.SessionRepo
	SubscriptionRepo *postgres.SubscriptionRepo
	PromoRepo        *postgres.PromoRepo
	IncidentRepo     *postgres.IncidentRepo
	RecipientRepo    *postgres.RecipientRepo
	ObjectStore      *s3infra.Store
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
	Logger           zerolog.Logger
}
