package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"mockify/internal/app"
	"mockify/internal/events"
	"mockify/internal/httputil"
	"mockify/internal/llm"
	"mockify/internal/prompt"
	"mockify/internal/report"
	"mockify/internal/stats"
)

type askRequest struct {
	Prompt  string         `json:"prompt" validate:"required"`
	Type    string         `json:"type" validate:"required"`
	Context prompt.Context `json:"context"`
}

type analyzeRequest struct {
	Transcript string         `json:"transcript" validate:"required"`
	Context    prompt.Context `json:"context"`
}

type interviewAnalyzedEvent struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Round   string `json:"round"`
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
}

func main() {
	deps, err := app.Build("interview")
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/interview/ask", askHandler(deps))
	r.Post("/interview/analyze", analyzeHandler(deps))
	r.Get("/stats", statsHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("interview service listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := httputil.DecodeValid(r, &req); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		final := prompt.Build(req.Prompt, prompt.Mode(req.Type), req.Context)
		reply, err := deps.LLM.Generate(r.Context(), final)
		if err != nil {
			// Connectivity problems are surfaced inside the reply so the
			// conversation UI can show them to the candidate.
			if msg, ok := friendlyLLMError(err); ok {
				deps.Log.Warn("inference failed on chat path", "err", err)
				httputil.WriteJSON(w, http.StatusOK, map[string]any{"reply": msg})
				return
			}
			httputil.Fail(deps.Log, w, "inference failed", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"reply": reply})
	}
}

func friendlyLLMError(err error) (string, bool) {
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		return "Error: the AI interviewer is not running. Start the local model server and try again.", true
	case errors.Is(err, llm.ErrTimeout):
		return "Error: AI response timed out.", true
	}
	return "", false
}

func analyzeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req analyzeRequest
		if err := httputil.DecodeValid(r, &req); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}

		deps.Log.Info("generating analysis report")
		final := prompt.Build(req.Transcript, prompt.ModeReport, req.Context)
		raw, err := deps.LLM.Generate(ctx, final)
		if err != nil {
			// No reply means no interpretation and no stats mutation.
			httputil.Fail(deps.Log, w, "analysis failed: "+err.Error(), err, http.StatusInternalServerError)
			return
		}

		analysis := report.Interpret(raw)

		// Stats updates are best-effort; the caller gets the analysis
		// even when persistence is broken.
		if s, err := deps.Store.LoadStats(ctx); err != nil {
			deps.Log.Error("failed to load stats", "err", err)
		} else {
			s = stats.Apply(s, analysis, stats.RequestContext{
				Company: req.Context.Company,
				Role:    req.Context.Role,
				Round:   req.Context.Round,
			})
			if err := deps.Store.SaveStats(ctx, s); err != nil {
				deps.Log.Error("failed to save stats", "err", err)
			}
		}

		evt := interviewAnalyzedEvent{
			Company: req.Context.Company,
			Role:    req.Context.Role,
			Round:   req.Context.Round,
			Score:   analysis.Score,
			Verdict: analysis.Verdict,
		}
		if err := events.PublishWithRetry(ctx, deps.Events, events.SubjectInterviewAnalyzed, evt, 3, 200*time.Millisecond); err != nil {
			deps.Log.Warn("failed to publish event", "subject", events.SubjectInterviewAnalyzed, "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"analysis": analysis,
			"raw":      raw,
		})
	}
}

func statsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := deps.Store.LoadStats(r.Context())
		if err != nil {
			deps.Log.Error("failed to load stats, serving defaults", "err", err)
			s = stats.CumulativeStats{}
		}
		if s.History == nil {
			s.History = []stats.HistoryEntry{}
		}
		httputil.WriteJSON(w, http.StatusOK, s)
	}
}
