package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/agent"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/detect"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/llm"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/store"
)

func newTestRouter(t *testing.T, gen llm.Generator, minLatency time.Duration) chi.Router {
	t.Helper()

	svc := agent.NewService(store.NewMemoryStore(), detect.New(nil, nil), gen, nil, agent.Options{})
	h := NewHoneypotHandler(svc, nil, minLatency, nil)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postTurn(t *testing.T, r chi.Router, payload string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/honeypot", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleTurnSuccess(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Replies: []string{"Oh dear, which bank is this for?"}}
	r := newTestRouter(t, gen, 0)

	w := postTurn(t, r, `{
		"sessionId": "sess-1",
		"message": {"sender": "scammer", "text": "your account is blocked, verify now", "timestamp": "2026-01-29T10:00:00Z"}
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got TurnResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Status != "success" {
		t.Errorf("Expected status success, got %q", got.Status)
	}
	if got.Reply != "Oh dear, which bank is this for?" {
		t.Errorf("Unexpected reply: %q", got.Reply)
	}
	if !got.ScamDetected {
		t.Error("Expected scamDetected=true")
	}
	if got.EngagementMetrics == nil || got.EngagementMetrics.TotalMessagesExchanged != 2 {
		t.Errorf("Unexpected engagement metrics: %+v", got.EngagementMetrics)
	}
	if got.ExtractedIntelligence == nil {
		t.Fatal("Expected extractedIntelligence in response")
	}
	if got.ExtractedIntelligence.UpiIDs == nil {
		t.Error("Intelligence lists must serialize as arrays, not null")
	}
}

func TestHandleTurnShortAlias(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Replies: []string{"ok"}}
	r := newTestRouter(t, gen, 0)

	req := httptest.NewRequest(http.MethodPost, "/h", bytes.NewBufferString(`{
		"sessionId": "sess-1",
		"message": {"sender": "scammer", "text": "hello"}
	}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 on alias route, got %d", w.Code)
	}
}

func TestHandleTurnValidation(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Replies: []string{"ok"}}
	r := newTestRouter(t, gen, 0)

	tests := []struct {
		name    string
		payload string
	}{
		{"empty body", ``},
		{"malformed json", `{"sessionId": `},
		{"missing session id", `{"message": {"sender": "scammer", "text": "hi"}}`},
		{"missing text", `{"sessionId": "s", "message": {"sender": "scammer", "text": "  "}}`},
		{"missing sender", `{"sessionId": "s", "message": {"text": "hi"}}`},
		{"bad sender", `{"sessionId": "s", "message": {"sender": "robot", "text": "hi"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postTurn(t, r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleTurnGatewayFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Err: errors.New("all backends down")}
	r := newTestRouter(t, gen, 0)

	w := postTurn(t, r, `{
		"sessionId": "sess-1",
		"message": {"sender": "scammer", "text": "urgent, verify your account"}
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got TurnResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Status != "success" {
		t.Errorf("Expected status success, got %q", got.Status)
	}
	if strings.TrimSpace(got.Reply) == "" {
		t.Error("Expected a non-empty fallback reply")
	}
}

func TestHandleTurnPacingFloor(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Replies: []string{"ok"}}
	r := newTestRouter(t, gen, 150*time.Millisecond)

	start := time.Now()
	w := postTurn(t, r, `{
		"sessionId": "sess-1",
		"message": {"sender": "scammer", "text": "hello"}
	}`)
	elapsed := time.Since(start)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("Turn answered in %v, expected the %v pacing floor", elapsed, 150*time.Millisecond)
	}
}

func TestHandleLastReportWithoutReporter(t *testing.T) {
	t.Parallel()

	gen := &llm.Mock{Replies: []string{"ok"}}
	r := newTestRouter(t, gen, 0)

	req := httptest.NewRequest(http.MethodGet, "/debug/last-report", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
