package llm

import (
	"context"
	"errors"
)

// Typed failures so callers can decide how to surface them. The chat
// path embeds a friendly message in the reply; the report path fails
// the request before any stats are touched.
var (
	ErrUnavailable = errors.New("inference endpoint unreachable")
	ErrTimeout     = errors.New("inference timed out")
)

// Client is a minimal generation interface to allow pluggable providers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
