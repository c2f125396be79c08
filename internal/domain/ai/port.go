package ai

import "context"

type Client interface {
	Analyze(ctx context.Context, imageBase64, mimeType string) (string, error)
}
