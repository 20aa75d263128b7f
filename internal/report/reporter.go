// Package report delivers final engagement reports to the external
// results endpoint.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Payload is the flat report body the results endpoint expects.
type Payload struct {
	SessionID                 string              `json:"sessionId"`
	ScamDetected              bool                `json:"scamDetected"`
	TotalMessagesExchanged    int                 `json:"totalMessagesExchanged"`
	EngagementDurationSeconds int                 `json:"engagementDurationSeconds"`
	ExtractedIntelligence     domain.Intelligence `json:"extractedIntelligence"`
	AgentNotes                string              `json:"agentNotes"`
}

// Reporter posts reports to a fixed endpoint. Failures are logged and
// swallowed; reporting must never abort a turn.
type Reporter struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	lastPayload *Payload
}

// New creates a reporter for endpoint. An empty endpoint disables
// delivery (Send becomes a logged no-op).
func New(endpoint string, timeout time.Duration, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Reporter{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send posts the payload. Non-2xx and network failures are logged,
// never returned as hard errors to the turn path; the error is exposed
// only so tests and callers that care can observe delivery.
func (r *Reporter) Send(ctx context.Context, payload Payload) error {
	r.mu.Lock()
	r.lastPayload = &payload
	r.mu.Unlock()

	if r.endpoint == "" {
		r.logger.Info("report endpoint not configured, skipping delivery", "session_id", payload.SessionID)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("failed to encode report payload", "session_id", payload.SessionID, "error", err)
		return fmt.Errorf("encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("report delivery failed", "session_id", payload.SessionID, "error", err)
		return fmt.Errorf("deliver report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.Warn("report rejected",
			"session_id", payload.SessionID,
			"status", resp.StatusCode,
			"body", string(raw))
		return fmt.Errorf("report rejected with status %d", resp.StatusCode)
	}

	r.logger.Info("report delivered", "session_id", payload.SessionID, "messages", payload.TotalMessagesExchanged)
	return nil
}

// LastPayload returns the most recently attempted payload, for the
// debug endpoint. Nil when nothing has been sent yet.
func (r *Reporter) LastPayload() *Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPayload
}
