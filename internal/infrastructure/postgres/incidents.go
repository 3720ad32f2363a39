package postgres

import (
	"context"
	"fmt"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncidentRepo stores incident metadata. The report body itself lives in
// object storage; only the URL is recorded here.
type IncidentRepo struct {
	pool *pgxpool.Pool
}

func NewIncidentRepo(pool *pgxpool.Pool) *IncidentRepo {
	return &IncidentRepo{pool: pool}
}

func (r *IncidentRepo) Create(ctx context.Context, rec *domain.IncidentRecord) error {
	const q = `
		INSERT INTO incident_logs (user_id, gcs_url, incident_type, severity, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, q, rec.UserID, rec.StorageURL, rec.IncidentType, rec.Severity, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("insert incident metadata for user %s: %w", rec.UserID, err)
	}
	return nil
}
