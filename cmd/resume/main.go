package main

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"mockify/internal/app"
	"mockify/internal/cache"
	"mockify/internal/events"
	"mockify/internal/extract"
	"mockify/internal/httputil"
	"mockify/internal/prompt"
	"mockify/internal/resume"
)

const defaultTopN = 10

type resumeAnalyzedEvent struct {
	Kind     string `json:"kind"` // "single" or "batch"
	Files    int    `json:"files"`
	TopScore int    `json:"top_score"`
}

func main() {
	deps, err := app.Build("resume")
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/analyze", analyzeHandler(deps))
	r.Post("/analyze_batch", analyzeBatchHandler(deps))
	r.Get("/history", historyHandler(deps))
	r.Post("/clear_history", clearHistoryHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("resume service listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func analyzeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > deps.Config.MaxUploadSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", deps.Config.MaxUploadSize), nil, http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			httputil.Fail(deps.Log, w, "resume file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if !extract.Allowed(header.Filename) {
			httputil.Fail(deps.Log, w, "invalid file type (only PDF, DOCX and TXT allowed)", nil, http.StatusBadRequest)
			return
		}
		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		text, err := extract.FromFile(header.Filename, content)
		if err != nil {
			httputil.Fail(deps.Log, w, "corrupted file", err, http.StatusInternalServerError)
			return
		}

		key := cache.Key(text)
		if cached, err := deps.Cache.GetReport(ctx, key); err != nil {
			deps.Log.Warn("cache lookup failed", "err", err)
		} else if cached != nil {
			deps.Log.Info("serving cached analysis", "filename", header.Filename)
			recordSingle(deps, r, header.Filename, *cached)
			httputil.WriteJSON(w, http.StatusOK, cached)
			return
		}

		raw, err := deps.LLM.Generate(ctx, prompt.Resume(text))
		if err != nil {
			httputil.Fail(deps.Log, w, "analysis failed: "+err.Error(), err, http.StatusInternalServerError)
			return
		}
		analysis, err := resume.ParseATSReport(raw)
		if err != nil {
			httputil.Fail(deps.Log, w, "AI returned an unusable analysis", err, http.StatusInternalServerError)
			return
		}

		if err := deps.Cache.SetReport(ctx, key, &analysis, deps.Config.CacheTTL); err != nil {
			deps.Log.Warn("cache store failed", "err", err)
		}
		recordSingle(deps, r, header.Filename, analysis)
		httputil.WriteJSON(w, http.StatusOK, analysis)
	}
}

// recordSingle appends a single-analysis record to history and emits
// the domain event. Both are best-effort.
func recordSingle(deps app.Deps, r *http.Request, filename string, analysis resume.ATSReport) {
	ctx := r.Context()
	h, err := deps.Store.LoadHistory(ctx)
	if err != nil {
		deps.Log.Error("failed to load history", "err", err)
	} else {
		h.AddSingle(resume.SingleRecord{Filename: filename, Analysis: analysis})
		if err := deps.Store.SaveHistory(ctx, h); err != nil {
			deps.Log.Error("failed to save history", "err", err)
		}
	}

	evt := resumeAnalyzedEvent{Kind: "single", Files: 1, TopScore: analysis.ATSScore}
	if err := events.PublishWithRetry(ctx, deps.Events, events.SubjectResumeAnalyzed, evt, 3, 200*time.Millisecond); err != nil {
		deps.Log.Warn("failed to publish event", "subject", events.SubjectResumeAnalyzed, "err", err)
	}
}

func analyzeBatchHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(deps.Config.MaxUploadSize); err != nil {
			httputil.Fail(deps.Log, w, "invalid multipart form", err, http.StatusBadRequest)
			return
		}
		uploads := r.MultipartForm.File["resumes"]
		if len(uploads) == 0 {
			httputil.Fail(deps.Log, w, "at least one resume is required", nil, http.StatusBadRequest)
			return
		}

		topN := defaultTopN
		if v, err := strconv.Atoi(r.FormValue("top_n")); err == nil && v > 0 {
			topN = v
		}
		filters := prompt.BatchFilters{
			Role:            r.FormValue("role"),
			MainLanguage:    r.FormValue("main_language"),
			CandidateType:   r.FormValue("candidate_type"),
			PrefersProjects: r.FormValue("prefers_projects") == "yes",
			ExpYears:        r.FormValue("exp_years"),
		}

		items, err := readBatchItems(uploads)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read uploads", err, http.StatusInternalServerError)
			return
		}

		results := resume.ScoreBatch(ctx, deps.Log, deps.LLM, items, filters, deps.Config.BatchConcurrency)

		// Only the requested top slice goes to history; the caller gets
		// everything so the UI can split tiers itself.
		top := results
		if len(top) > topN {
			top = top[:topN]
		}
		if h, err := deps.Store.LoadHistory(ctx); err != nil {
			deps.Log.Error("failed to load history", "err", err)
		} else {
			h.AddBatch(resume.BatchRecord{
				Type:           "fast",
				FilesProcessed: len(uploads),
				TopNRequested:  topN,
				Results:        top,
			})
			if err := deps.Store.SaveHistory(ctx, h); err != nil {
				deps.Log.Error("failed to save history", "err", err)
			}
		}

		topScore := 0
		if len(results) > 0 {
			topScore = results[0].Score
		}
		evt := resumeAnalyzedEvent{Kind: "batch", Files: len(uploads), TopScore: topScore}
		if err := events.PublishWithRetry(ctx, deps.Events, events.SubjectResumeAnalyzed, evt, 3, 200*time.Millisecond); err != nil {
			deps.Log.Warn("failed to publish event", "subject", events.SubjectResumeAnalyzed, "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, results)
	}
}

// readBatchItems loads each allowed upload into memory. Files with
// unsupported extensions are skipped, matching the single-upload gate.
func readBatchItems(uploads []*multipart.FileHeader) ([]resume.BatchItem, error) {
	var items []resume.BatchItem
	for _, fh := range uploads {
		if !extract.Allowed(fh.Filename) {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		items = append(items, resume.BatchItem{Filename: fh.Filename, Content: content})
	}
	return items, nil
}

func historyHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := deps.Store.LoadHistory(r.Context())
		if err != nil {
			deps.Log.Error("failed to load history, serving empty", "err", err)
			h = resume.History{}
		}
		if h.Single == nil {
			h.Single = []resume.SingleRecord{}
		}
		if h.Batch == nil {
			h.Batch = []resume.BatchRecord{}
		}
		httputil.WriteJSON(w, http.StatusOK, h)
	}
}

func clearHistoryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Store.ClearHistory(r.Context()); err != nil {
			httputil.Fail(deps.Log, w, "failed to clear history", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}
}
