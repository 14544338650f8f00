package resume

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"mockify/internal/extract"
	"mockify/internal/llm"
	"mockify/internal/prompt"
)

// BatchItem is one uploaded resume awaiting screening.
type BatchItem struct {
	Filename string
	Content  []byte
}

// ScoreBatch screens every item against the filters and returns all
// results sorted descending by score. Per-file failures become
// zero-score placeholder entries instead of failing the batch.
func ScoreBatch(ctx context.Context, log *slog.Logger, client llm.Client, items []BatchItem, filters prompt.BatchFilters, concurrency int) []BatchScore {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]BatchScore, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i] = scoreOne(gctx, log, client, item, filters)
			return nil
		})
	}
	// Workers never return errors; placeholders carry failures.
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func scoreOne(ctx context.Context, log *slog.Logger, client llm.Client, item BatchItem, filters prompt.BatchFilters) BatchScore {
	text, err := extract.FromFile(item.Filename, item.Content)
	if err != nil {
		log.Warn("batch: text extraction failed", "filename", item.Filename, "err", err)
		return BatchScore{Filename: item.Filename, Score: 0, Summary: "Error: File Corrupted"}
	}

	raw, err := client.Generate(ctx, prompt.BatchResume(text, filters))
	if err != nil {
		log.Warn("batch: inference failed", "filename", item.Filename, "err", err)
		return BatchScore{Filename: item.Filename, Score: 0, Summary: "Analysis Error"}
	}

	score, summary, err := ParseBatchScore(raw)
	if err != nil {
		log.Warn("batch: unparseable reply", "filename", item.Filename, "err", err)
		return BatchScore{Filename: item.Filename, Score: 0, Summary: "Analysis Error"}
	}
	return BatchScore{Filename: item.Filename, Score: score, Summary: summary}
}
