package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mockify/internal/resume"
)

// Cache stores single-resume analysis results so re-uploading the same
// file skips the inference call.
type Cache interface {
	// GetReport retrieves a cached ATS report by key. Returns nil on miss.
	GetReport(ctx context.Context, key string) (*resume.ATSReport, error)

	// SetReport stores an ATS report with TTL.
	SetReport(ctx context.Context, key string, report *resume.ATSReport, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a cache key from the extracted resume text.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
