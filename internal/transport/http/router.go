package http

import (
	"net/http"
	"time"

	"github.com/ALDWIL/doxrep/internal/application/auth"
	"github.com/ALDWIL/doxrep/internal/application/entitlement"
	"github.com/ALDWIL/doxrep/internal/application/incident"
	"github.com/ALDWIL/doxrep/internal/config"
	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/transport/http/handler"
	appmiddleware "github.com/ALDWIL/doxrep/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.Deps{
		Verifications: deps.VerificationRepo,
		Users:         deps.UserRepo,
		Sessions:      deps.SessionRepo,
		Signer:        deps.JWTProvider,
		Mailer:        deps.Mailer,
		CodeTTL:       time.Duration(cfg.CodeTTLMinutes) * time.Minute,
		Logger:        deps.Logger,
	})
	entitlementSvc := entitlement.NewService(entitlement.Deps{
		Subscriptions: deps.SubscriptionRepo,
		Promos:        deps.PromoRepo,
		Rules:         domain.DefaultPromoFormatRules(),
		Policy:        entitlement.RewardPolicy{TermDays: cfg.PromoLifetimeTermDays},
		Logger:        deps.Logger,
	})
	incidentSvc := incident.NewService(incident.Deps{
		Store:      deps.ObjectStore,
		Incidents:  deps.IncidentRepo,
		Recipients: deps.RecipientRepo,
		Mailer:     deps.Mailer,
		Logger:     deps.Logger,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, deps.Logger)
	entitlementH := handler.NewEntitlementHandler(entitlementSvc, deps.Logger)
	incidentH := handler.NewIncidentHandler(incidentSvc, deps.Logger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/send-code", authH.SendCode)
		r.With(sensitiveRL.Limit).Post("/auth/verify-code", authH.VerifyCode)

		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/subscriptions/check", entitlementH.Check)
			r.Post("/promo/redeem", entitlementH.Redeem)
			r.Post("/incidents", incidentH.Submit)
		})
	})

	return r
}
