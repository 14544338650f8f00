// Package store persists interview stats and resume-analysis history.
// Both documents are read whole at the start of an operation and
// written back whole at the end.
package store

import (
	"context"

	"mockify/internal/resume"
	"mockify/internal/stats"
)

// Store defines the persistence contract shared by the file and
// Postgres implementations.
type Store interface {
	LoadStats(ctx context.Context) (stats.CumulativeStats, error)
	SaveStats(ctx context.Context, s stats.CumulativeStats) error
	LoadHistory(ctx context.Context) (resume.History, error)
	SaveHistory(ctx context.Context, h resume.History) error
	ClearHistory(ctx context.Context) error
}
