// Package events publishes domain events for downstream consumers.
// Publishing is fire-and-forget: an event that cannot be delivered is
// logged and dropped, never failing the request that produced it.
package events

import (
	"context"
	"time"

	"mockify/internal/retry"
)

// Subjects emitted by the services.
const (
	SubjectInterviewAnalyzed = "interviews.analyzed"
	SubjectResumeAnalyzed    = "resumes.analyzed"
)

// Publisher exposes a minimal contract to emit events.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, subject string, payload any, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := p.Publish(ctx, subject, payload); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return nil
}
