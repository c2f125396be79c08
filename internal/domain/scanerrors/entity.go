package scanerrors

import "time"

// ScanError represents a persisted diagnostics entry for a failed analysis
// or a swallowed persistence error. Never surfaced to end users.
type ScanError struct {
	ID        int64     `json:"id"`
	ScanID    string    `json:"scan_id,omitempty"`
	Phase     string    `json:"phase"` // analyze | persist | upload
	Message   string    `json:"message"`
	RawOutput string    `json:"raw_output,omitempty"` // model output when relevant
	CreatedAt time.Time `json:"created_at"`
}
