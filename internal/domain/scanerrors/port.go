package scanerrors

import "context"

// Repository port for recording diagnostics entries.
type Repository interface {
	Save(ctx context.Context, e *ScanError) error
}
