// Package resume holds the resume-analysis domain: ATS reports, batch
// screening scores, and the persisted analysis history.
package resume

import (
	"errors"
	"time"

	"mockify/internal/report"
)

// ATSReport is the structured result of a single-resume analysis.
type ATSReport struct {
	ATSScore     int      `json:"ats_score"`
	Skills       []string `json:"skills"`
	Summary      string   `json:"summary"`
	Improvements []string `json:"improvements"`
}

// BatchScore is one ranked entry from a batch screening run.
type BatchScore struct {
	Filename string `json:"filename"`
	Score    int    `json:"score"`
	Summary  string `json:"summary"`
}

// History is the persisted record of past analyses, most-recent-first.
type History struct {
	Single []SingleRecord `json:"single"`
	Batch  []BatchRecord  `json:"batch"`
}

// SingleRecord captures one single-resume analysis.
type SingleRecord struct {
	Filename  string    `json:"filename"`
	Analysis  ATSReport `json:"analysis"`
	Timestamp string    `json:"timestamp"`
}

// BatchRecord captures one batch screening run (top-N results only).
type BatchRecord struct {
	Type           string       `json:"type"`
	FilesProcessed int          `json:"files_processed"`
	TopNRequested  int          `json:"top_n_requested"`
	Results        []BatchScore `json:"results"`
	Timestamp      string       `json:"timestamp"`
}

// ErrUnparseable means the model reply held no usable JSON object.
var ErrUnparseable = errors.New("no structured data in model reply")

// AddSingle prepends a single-analysis record with a timestamp.
func (h *History) AddSingle(rec SingleRecord) {
	rec.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	h.Single = append([]SingleRecord{rec}, h.Single...)
}

// AddBatch prepends a batch record with a timestamp.
func (h *History) AddBatch(rec BatchRecord) {
	rec.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	h.Batch = append([]BatchRecord{rec}, h.Batch...)
}

// ParseATSReport recovers an ATSReport from a raw model reply. Unlike
// the interview interpreter there is no lexical fallback here: the
// original surfaces an analysis error when the reply has no object.
func ParseATSReport(raw string) (ATSReport, error) {
	obj, ok := report.ExtractObject(raw)
	if !ok {
		return ATSReport{}, ErrUnparseable
	}
	var r ATSReport
	if v, ok := obj["ats_score"]; ok {
		if n, ok := report.CoerceInt(v); ok {
			r.ATSScore = n
		}
	}
	if v, ok := obj["skills"]; ok {
		if l, ok := report.CoerceStringList(v); ok {
			r.Skills = l
		}
	}
	if v, ok := obj["summary"]; ok {
		if s, ok := report.CoerceString(v); ok {
			r.Summary = s
		}
	}
	if v, ok := obj["improvements"]; ok {
		if l, ok := report.CoerceStringList(v); ok {
			r.Improvements = l
		}
	}
	return r, nil
}

// ParseBatchScore recovers a score and summary from a raw batch reply.
func ParseBatchScore(raw string) (int, string, error) {
	obj, ok := report.ExtractObject(raw)
	if !ok {
		return 0, "", ErrUnparseable
	}
	var (
		score   int
		summary string
	)
	if v, ok := obj["score"]; ok {
		if n, ok := report.CoerceInt(v); ok {
			score = n
		}
	}
	if v, ok := obj["summary"]; ok {
		if s, ok := report.CoerceString(v); ok {
			summary = s
		}
	}
	return score, summary, nil
}
