package stats

import (
	"time"

	"mockify/internal/report"
)

// historyCap bounds the interview history; oldest entries are evicted first.
const historyCap = 20

// CumulativeStats is the persisted aggregate across all scored interviews.
type CumulativeStats struct {
	TotalInterviews int            `json:"total_interviews"`
	AverageScore    int            `json:"average_score"`
	History         []HistoryEntry `json:"history"`
}

// HistoryEntry records one scored interview, most-recent-last.
type HistoryEntry struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Round   string `json:"round"`
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
	Date    string `json:"date"`
}

// RequestContext carries the interview setting recorded in history.
type RequestContext struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Round   string `json:"round"`
}

// Apply folds one analysis result into the cumulative stats and returns
// the updated value. It never fails.
//
// The average is recomputed from its previous integer-truncated value
// rather than a retained sum, so repeated truncation drifts from the
// true mean. That drift is load-bearing for compatibility; do not
// "fix" it by keeping a running sum.
func Apply(s CumulativeStats, result report.AnalysisResult, reqCtx RequestContext) CumulativeStats {
	s.TotalInterviews++
	n := s.TotalInterviews

	s.AverageScore = (s.AverageScore*(n-1) + result.Score) / n

	s.History = append(s.History, HistoryEntry{
		Company: defaultStr(reqCtx.Company, "Unknown"),
		Role:    defaultStr(reqCtx.Role, "Unknown"),
		Round:   defaultStr(reqCtx.Round, "General"),
		Score:   result.Score,
		Verdict: result.Verdict,
		Date:    time.Now().Format(time.RFC3339),
	})
	if len(s.History) > historyCap {
		s.History = s.History[len(s.History)-historyCap:]
	}
	return s
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
