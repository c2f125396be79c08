package scans

import "context"

// Repository port (interface untuk persistence)
// Append-only: no update or delete path for scan history.
type Repository interface {
	Save(ctx context.Context, s *Scan) error
	Recent(ctx context.Context, limit int) ([]*Scan, error)
}

// ImageStore port (interface untuk penyimpanan gambar label)
type ImageStore interface {
	UploadBytes(ctx context.Context, data []byte, key, contentType string) (string, error)
}
