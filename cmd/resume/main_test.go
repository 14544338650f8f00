package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"mockify/internal/app"
	"mockify/internal/cache"
	"mockify/internal/config"
	"mockify/internal/events"
	"mockify/internal/llm"
	"mockify/internal/resume"
	"mockify/internal/store"
)

func newTestDeps(st store.Store, client llm.Client, c cache.Cache) app.Deps {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return app.Deps{
		Config: config.Config{
			MaxUploadSize:    10 << 20,
			CacheTTL:         time.Hour,
			BatchConcurrency: 2,
		},
		Store:  st,
		Cache:  c,
		LLM:    client,
		Events: events.NewNoOpPublisher(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type upload struct {
	field    string
	filename string
	content  string
}

func createMultipartRequest(t *testing.T, path string, uploads []upload, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, u := range uploads {
		part, err := mw.CreateFormFile(u.field, u.filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(u.content)); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeHandler(t *testing.T) {
	atsReply := `{"ats_score": 78, "skills": ["Go", "SQL"], "summary": "Solid backend profile.", "improvements": ["Add metrics"]}`

	t.Run("successful analysis", func(t *testing.T) {
		mockLLM := new(llm.MockClient)
		mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "Go developer, 5 years")
		})).Return(atsReply, nil).Once()

		mockStore := new(store.MockStore)
		mockStore.On("LoadHistory", mock.Anything).Return(resume.History{}, nil).Once()
		mockStore.On("SaveHistory", mock.Anything, mock.MatchedBy(func(h resume.History) bool {
			return len(h.Single) == 1 &&
				h.Single[0].Filename == "cv.txt" &&
				h.Single[0].Analysis.ATSScore == 78
		})).Return(nil).Once()

		deps := newTestDeps(mockStore, mockLLM, nil)
		req := createMultipartRequest(t, "/analyze", []upload{{"resume", "cv.txt", "Go developer, 5 years"}}, nil)
		w := httptest.NewRecorder()
		analyzeHandler(deps)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
		var resp resume.ATSReport
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ATSScore != 78 || len(resp.Skills) != 2 {
			t.Errorf("unexpected report: %+v", resp)
		}
		mockLLM.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("cache hit skips inference", func(t *testing.T) {
		cached := &resume.ATSReport{ATSScore: 91, Summary: "Cached."}
		mockCache := new(cache.MockCache)
		mockCache.On("GetReport", mock.Anything, cache.Key("same text")).Return(cached, nil).Once()

		mockStore := new(store.MockStore)
		mockStore.On("LoadHistory", mock.Anything).Return(resume.History{}, nil).Once()
		mockStore.On("SaveHistory", mock.Anything, mock.Anything).Return(nil).Once()

		mockLLM := new(llm.MockClient)

		deps := newTestDeps(mockStore, mockLLM, mockCache)
		req := createMultipartRequest(t, "/analyze", []upload{{"resume", "cv.txt", "same text"}}, nil)
		w := httptest.NewRecorder()
		analyzeHandler(deps)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"ats_score": 91`) {
			t.Errorf("expected cached report, got %s", w.Body.String())
		}
		mockLLM.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		mockCache.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		deps := newTestDeps(new(store.MockStore), new(llm.MockClient), nil)
		req := createMultipartRequest(t, "/analyze", []upload{{"resume", "cv.exe", "binary"}}, nil)
		w := httptest.NewRecorder()
		analyzeHandler(deps)(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		deps := newTestDeps(new(store.MockStore), new(llm.MockClient), nil)
		req := createMultipartRequest(t, "/analyze", nil, map[string]string{"other": "x"})
		w := httptest.NewRecorder()
		analyzeHandler(deps)(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("reply without JSON is a server error", func(t *testing.T) {
		mockLLM := new(llm.MockClient)
		mockLLM.On("Generate", mock.Anything, mock.Anything).
			Return("I cannot analyze this resume.", nil).Once()

		deps := newTestDeps(new(store.MockStore), mockLLM, nil)
		req := createMultipartRequest(t, "/analyze", []upload{{"resume", "cv.txt", "text"}}, nil)
		w := httptest.NewRecorder()
		analyzeHandler(deps)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d. Body: %s", w.Code, w.Body.String())
		}
		mockLLM.AssertExpectations(t)
	})
}

func TestAnalyzeBatchHandler(t *testing.T) {
	mockLLM := new(llm.MockClient)
	mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "strong candidate")
	})).Return(`{"score": 90, "summary": "Great fit."}`, nil).Once()
	mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "weak candidate")
	})).Return(`{"score": 40, "summary": "Poor fit."}`, nil).Once()

	mockStore := new(store.MockStore)
	mockStore.On("LoadHistory", mock.Anything).Return(resume.History{}, nil).Once()
	mockStore.On("SaveHistory", mock.Anything, mock.MatchedBy(func(h resume.History) bool {
		return len(h.Batch) == 1 &&
			h.Batch[0].FilesProcessed == 2 &&
			h.Batch[0].TopNRequested == 1 &&
			len(h.Batch[0].Results) == 1 &&
			h.Batch[0].Results[0].Filename == "a.txt"
	})).Return(nil).Once()

	deps := newTestDeps(mockStore, mockLLM, nil)
	uploads := []upload{
		{"resumes", "a.txt", "strong candidate"},
		{"resumes", "b.txt", "weak candidate"},
	}
	req := createMultipartRequest(t, "/analyze_batch", uploads, map[string]string{"top_n": "1", "role": "Backend"})
	w := httptest.NewRecorder()
	analyzeBatchHandler(deps)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	var results []resume.BatchScore
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// The response carries every result ranked by score; only the top
	// slice goes to history.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Filename != "a.txt" || results[0].Score != 90 {
		t.Errorf("expected a.txt first with score 90, got %+v", results[0])
	}
	if results[1].Filename != "b.txt" || results[1].Score != 40 {
		t.Errorf("expected b.txt second with score 40, got %+v", results[1])
	}

	mockLLM.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestAnalyzeBatchHandlerNoFiles(t *testing.T) {
	deps := newTestDeps(new(store.MockStore), new(llm.MockClient), nil)
	req := createMultipartRequest(t, "/analyze_batch", nil, map[string]string{"top_n": "5"})
	w := httptest.NewRecorder()
	analyzeBatchHandler(deps)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHistoryHandler(t *testing.T) {
	t.Run("serves stored history", func(t *testing.T) {
		mockStore := new(store.MockStore)
		mockStore.On("LoadHistory", mock.Anything).Return(resume.History{
			Single: []resume.SingleRecord{{Filename: "cv.pdf"}},
		}, nil).Once()

		deps := newTestDeps(mockStore, new(llm.MockClient), nil)
		req := httptest.NewRequest(http.MethodGet, "/history", nil)
		w := httptest.NewRecorder()
		historyHandler(deps)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var h resume.History
		if err := json.NewDecoder(w.Body).Decode(&h); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(h.Single) != 1 || h.Single[0].Filename != "cv.pdf" {
			t.Errorf("unexpected history: %+v", h)
		}
		mockStore.AssertExpectations(t)
	})

	t.Run("nil slices serialize as empty arrays", func(t *testing.T) {
		mockStore := new(store.MockStore)
		mockStore.On("LoadHistory", mock.Anything).Return(resume.History{}, nil).Once()

		deps := newTestDeps(mockStore, new(llm.MockClient), nil)
		req := httptest.NewRequest(http.MethodGet, "/history", nil)
		w := httptest.NewRecorder()
		historyHandler(deps)(w, req)

		body := w.Body.String()
		if !strings.Contains(body, `"single": []`) || !strings.Contains(body, `"batch": []`) {
			t.Errorf("expected empty arrays, got %s", body)
		}
		mockStore.AssertExpectations(t)
	})
}

func TestClearHistoryHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := new(store.MockStore)
		mockStore.On("ClearHistory", mock.Anything).Return(nil).Once()

		deps := newTestDeps(mockStore, new(llm.MockClient), nil)
		req := httptest.NewRequest(http.MethodPost, "/clear_history", nil)
		w := httptest.NewRecorder()
		clearHistoryHandler(deps)(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"status": "success"`) {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
		mockStore.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		mockStore := new(store.MockStore)
		mockStore.On("ClearHistory", mock.Anything).Return(errors.New("db down")).Once()

		deps := newTestDeps(mockStore, new(llm.MockClient), nil)
		req := httptest.NewRequest(http.MethodPost, "/clear_history", nil)
		w := httptest.NewRecorder()
		clearHistoryHandler(deps)(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		mockStore.AssertExpectations(t)
	})
}
