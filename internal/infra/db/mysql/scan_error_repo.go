package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/glowscan/internal/domain/scanerrors"
)

type ScanErrorRepository struct {
	db *sql.DB
}

func NewScanErrorRepository(db *sql.DB) *ScanErrorRepository {
	return &ScanErrorRepository{db: db}
}

// Save records one diagnostics entry. Best-effort by contract: callers
// ignore the returned error beyond logging it.
func (r *ScanErrorRepository) Save(ctx context.Context, e *domain.ScanError) error {
	const q = `
INSERT INTO scan_errors (scan_id, phase, message, raw_output, created_at)
VALUES (?,?,?,?,?);
`
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		e.ScanID, stringOrDash(e.Phase), e.Message, e.RawOutput, created,
	)
	return err
}
