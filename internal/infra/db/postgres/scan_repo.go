package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/glowscan/internal/domain/scans"
)

type ScanRepository struct{ db *sql.DB }

func NewScanRepository(db *sql.DB) *ScanRepository { return &ScanRepository{db: db} }

// Save inserts one completed scan (append-only, no upsert).
func (r *ScanRepository) Save(ctx context.Context, s *domain.Scan) error {
	const q = `
INSERT INTO label_scans
(id, product_name, glow_score, vibe_check, red_flags, suggested_swap, image_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8);`

	name := stringOrDash(s.ProductName)
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		s.ID, name, string(s.GlowScore), s.VibeCheck,
		encodeFlags(s.RedFlags), s.SuggestedSwap, s.ImageURL, created,
	)
	return err
}

// Recent returns the newest scans first, bounded by limit.
func (r *ScanRepository) Recent(ctx context.Context, limit int) ([]*domain.Scan, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, product_name, glow_score, vibe_check, red_flags, suggested_swap, image_url, created_at
FROM label_scans
ORDER BY created_at DESC, id DESC
LIMIT $1;`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Scan
	for rows.Next() {
		var s domain.Scan
		var score, flags string
		var imageURL sql.NullString
		if err := rows.Scan(
			&s.ID, &s.ProductName, &score, &s.VibeCheck,
			&flags, &s.SuggestedSwap, &imageURL, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.GlowScore = domain.GlowScore(score)
		s.RedFlags = decodeFlags(flags)
		s.ImageURL = imageURL.String
		out = append(out, &s)
	}
	return out, rows.Err()
}
