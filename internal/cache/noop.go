package cache

import (
	"context"
	"time"

	"mockify/internal/resume"
)

// NoOpCache is a cache implementation that does nothing. Used when no
// Redis is configured - every lookup is a miss and stores succeed
// without storing.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetReport(ctx context.Context, key string) (*resume.ATSReport, error) {
	return nil, nil
}

func (c *NoOpCache) SetReport(ctx context.Context, key string, report *resume.ATSReport, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
