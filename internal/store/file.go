package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"mockify/internal/resume"
	"mockify/internal/stats"
)

// FileStore keeps each document in a single JSON file. A missing or
// unreadable file yields the zero value instead of an error so a
// persistence problem never blocks the primary response.
//
// Writes are whole-file overwrites with no cross-request locking:
// concurrent writers race and the last one wins.
type FileStore struct {
	statsPath   string
	historyPath string
	log         *slog.Logger
}

func NewFileStore(statsPath, historyPath string, log *slog.Logger) *FileStore {
	return &FileStore{statsPath: statsPath, historyPath: historyPath, log: log}
}

func (f *FileStore) LoadStats(_ context.Context) (stats.CumulativeStats, error) {
	var s stats.CumulativeStats
	if !f.loadJSON(f.statsPath, &s) {
		return stats.CumulativeStats{}, nil
	}
	return s, nil
}

func (f *FileStore) SaveStats(_ context.Context, s stats.CumulativeStats) error {
	return f.saveJSON(f.statsPath, s)
}

func (f *FileStore) LoadHistory(_ context.Context) (resume.History, error) {
	var h resume.History
	if !f.loadJSON(f.historyPath, &h) {
		return resume.History{}, nil
	}
	return h, nil
}

func (f *FileStore) SaveHistory(_ context.Context, h resume.History) error {
	return f.saveJSON(f.historyPath, h)
}

func (f *FileStore) ClearHistory(ctx context.Context) error {
	return f.SaveHistory(ctx, resume.History{})
}

// loadJSON reports whether dst was cleanly decoded; callers fall back
// to the zero value otherwise.
func (f *FileStore) loadJSON(path string, dst any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Error("failed to read store file", "path", path, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		f.log.Error("failed to decode store file", "path", path, "err", err)
		return false
	}
	return true
}

func (f *FileStore) saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
