package incident

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/infrastructure/smtp"
	"github.com/rs/zerolog"
)

// ObjectStore holds immutable report documents.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// IncidentStore records metadata rows referencing stored documents.
type IncidentStore interface {
	Create(ctx context.Context, rec *domain.IncidentRecord) error
}

// RecipientStore lists the notification recipients configured per user.
type RecipientStore interface {
	ListByUser(ctx context.Context, userID string) ([]string, error)
}

// Service handles incident submission: durable upload, metadata row, then
// best-effort notification fan-out.
type Service interface {
	Submit(ctx context.Context, userID string, payload domain.IncidentPayload) (string, error)
}

type service struct {
	store      ObjectStore
	incidents  IncidentStore
	recipients RecipientStore
	mailer     smtp.Mailer
	log        zerolog.Logger
}

// Deps bundles the service's collaborators.
type Deps struct {
	Store      ObjectStore
	Incidents  IncidentStore
	Recipients RecipientStore
	Mailer     smtp.Mailer
	Logger     zerolog.Logger
}

func NewService(d Deps) Service {
	return &service{
		store:      d.Store,
		incidents:  d.Incidents,
		recipients: d.Recipients,
		mailer:     d.Mailer,
		log:        d.Logger,
	}
}

// Submit uploads the full payload to object storage, records a metadata-only
// row, and emails each configured recipient. Email delivery is best-effort:
// per-recipient failures are logged and never fail the submission.
func (s *service) Submit(ctx context.Context, userID string, payload domain.IncidentPayload) (string, error) {
	now := time.Now().UTC()

	doc := make(map[string]interface{}, len(payload)+3)
	for k, v := range payload {
		doc[k] = v
	}
	doc["user_id"] = userID
	doc["uploaded_at"] = now.Format(time.RFC3339)
	doc["blockchain_verified"] = true

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode incident document: %w", err)
	}

	key := fmt.Sprintf("incidents/%s/%d.json", userID, now.UnixMilli())
	url, err := s.store.Upload(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("upload incident document: %w", err)
	}

	rec := &domain.IncidentRecord{
		UserID:       userID,
		StorageURL:   url,
		IncidentType: payload.Field("incident_type"),
		Severity:     payload.Field("severity"),
		Timestamp:    payload.Field("timestamp"),
	}
	if err := s.incidents.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("store incident metadata: %w", err)
	}

	recipients, err := s.recipients.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list incident recipients")
		return url, nil
	}
	s.notifyAll(recipients, url, rec)

	return url, nil
}

// notifyAll dispatches one email per recipient concurrently. Recipients are
// independent; one failed delivery must not block the rest.
func (s *service) notifyAll(recipients []string, url string, rec *domain.IncidentRecord) {
	subject, body, err := smtp.IncidentEmail(url, rec.IncidentType, rec.Severity, rec.Timestamp)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to render incident email")
		return
	}

	var wg sync.WaitGroup
	for _, to := range recipients {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			if err := s.mailer.SendEmail(to, subject, body); err != nil {
				s.log.Warn().Err(err).Str("recipient", to).Msg("incident notification failed")
			}
		}(to)
	}
	wg.Wait()
}
