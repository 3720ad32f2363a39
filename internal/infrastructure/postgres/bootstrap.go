package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Bootstrap creates all tables if they don't already exist. Safe to call on
// every startup.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS verification_codes (
			id         BIGSERIAL PRIMARY KEY,
			email      TEXT        NOT NULL,
			code       TEXT        NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			used       BOOLEAN     NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS verification_codes_email_code_idx
			ON verification_codes (email, code, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			email          TEXT        NOT NULL UNIQUE,
			email_verified TIMESTAMPTZ NOT NULL,
			last_login     TIMESTAMPTZ NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id            TEXT PRIMARY KEY,
			user_id       TEXT        NOT NULL REFERENCES users (id),
			session_token TEXT        NOT NULL,
			expires_at    TIMESTAMPTZ NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			user_id             TEXT PRIMARY KEY REFERENCES users (id),
			subscription_status TEXT        NOT NULL,
			plan_type           TEXT        NOT NULL,
			promo_code_used     TEXT,
			started_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			trial_ends_at       TIMESTAMPTZ,
			expires_at          TIMESTAMPTZ,
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS promo_codes (
			code       TEXT PRIMARY KEY,
			is_active  BOOLEAN NOT NULL DEFAULT TRUE,
			uses       INTEGER NOT NULL DEFAULT 0,
			max_uses   INTEGER,
			expires_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS incident_logs (
			id            BIGSERIAL PRIMARY KEY,
			user_id       TEXT        NOT NULL REFERENCES users (id),
			gcs_url       TEXT        NOT NULL,
			incident_type TEXT        NOT NULL,
			severity      TEXT        NOT NULL,
			timestamp     TEXT        NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subscription_emails (
			id              BIGSERIAL PRIMARY KEY,
			user_id         TEXT NOT NULL REFERENCES users (id),
			recipient_email TEXT NOT NULL,
			UNIQUE (user_id, recipient_email)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
