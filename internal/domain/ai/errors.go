package ai

import "errors"

// ErrNotConfigured indicates the provider API key is missing from the environment.
var ErrNotConfigured = errors.New("AI provider is not configured")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
