package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/agent"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/report"
)

// maxRequestBodySize bounds inbound payloads (1MB).
const maxRequestBodySize = 1 << 20

// TurnRequest is the inbound turn payload.
type TurnRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             domain.Message   `json:"message"`
	ConversationHistory []domain.Message `json:"conversationHistory,omitempty"`
	Metadata            *TurnMetadata    `json:"metadata,omitempty"`
}

// TurnMetadata is optional channel information. Accepted and logged,
// not acted on.
type TurnMetadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// TurnResponse is the outbound turn payload.
type TurnResponse struct {
	Status                string               `json:"status"`
	Reply                 string               `json:"reply"`
	ScamDetected          bool                 `json:"scamDetected"`
	EngagementMetrics     *EngagementMetrics   `json:"engagementMetrics,omitempty"`
	ExtractedIntelligence *domain.Intelligence `json:"extractedIntelligence,omitempty"`
	AgentNotes            string               `json:"agentNotes,omitempty"`
}

// EngagementMetrics summarizes how long the scammer has been kept busy.
type EngagementMetrics struct {
	EngagementDurationSeconds int `json:"engagementDurationSeconds"`
	TotalMessagesExchanged    int `json:"totalMessagesExchanged"`
}

// HoneypotHandler serves the conversation turn endpoints.
type HoneypotHandler struct {
	service  *agent.Service
	reporter *report.Reporter
	logger   *slog.Logger
	// minLatency is the floor for turn duration: turns that finish
	// faster sleep the remainder so replies read as humanly paced.
	// Zero disables pacing.
	minLatency time.Duration
}

// NewHoneypotHandler creates the turn handler. reporter may be nil;
// the debug endpoint then reports no payload.
func NewHoneypotHandler(service *agent.Service, reporter *report.Reporter, minLatency time.Duration, logger *slog.Logger) *HoneypotHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HoneypotHandler{
		service:    service,
		reporter:   reporter,
		logger:     logger,
		minLatency: minLatency,
	}
}

// RegisterRoutes mounts the turn endpoints on r. The short alias
// matches the original webhook registration.
func (h *HoneypotHandler) RegisterRoutes(r chi.Router) {
	r.Post("/honeypot", h.HandleTurn)
	r.Post("/h", h.HandleTurn)
	r.Get("/debug/last-report", h.HandleLastReport)
}

// HandleTurn validates the payload, runs the orchestrator, and always
// answers 200 with a best-effort reply once validation passed: an
// error page would break the engagement illusion.
func (h *HoneypotHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TurnRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			Error(w, http.StatusBadRequest, "empty request body")
			return
		}
		Error(w, http.StatusBadRequest, "malformed JSON payload")
		return
	}
	if msg := validateTurnRequest(&req); msg != "" {
		Error(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.service.HandleTurn(r.Context(), agent.TurnInput{
		SessionID: req.SessionID,
		Message:   req.Message,
		History:   req.ConversationHistory,
	})
	if err != nil {
		// Session backend failure. Still answer success with the
		// fallback line so the counterpart sees nothing unusual.
		h.logger.Error("turn processing failed", "session_id", req.SessionID, "error", err)
		h.pace(r, start)
		JSON(w, http.StatusOK, TurnResponse{Status: "success", Reply: agent.FallbackReply})
		return
	}

	intelligence := result.Intelligence
	resp := TurnResponse{
		Status:       "success",
		Reply:        result.Reply,
		ScamDetected: result.ScamDetected,
		EngagementMetrics: &EngagementMetrics{
			EngagementDurationSeconds: result.EngagementSeconds,
			TotalMessagesExchanged:    result.TotalMessages,
		},
		ExtractedIntelligence: &intelligence,
		AgentNotes:            result.AgentNotes,
	}

	h.pace(r, start)
	JSON(w, http.StatusOK, resp)
}

// HandleLastReport exposes the most recent callback payload for
// debugging schema rejections on the receiving end.
func (h *HoneypotHandler) HandleLastReport(w http.ResponseWriter, _ *http.Request) {
	if h.reporter == nil {
		JSON(w, http.StatusOK, map[string]string{"status": "reporting disabled"})
		return
	}
	payload := h.reporter.LastPayload()
	if payload == nil {
		JSON(w, http.StatusOK, map[string]string{"status": "no report sent yet"})
		return
	}
	JSON(w, http.StatusOK, payload)
}

// pace sleeps until minLatency has elapsed since start. Slow turns
// (cold starts, gateway retries) are never delayed further. Honors
// request cancellation.
func (h *HoneypotHandler) pace(r *http.Request, start time.Time) {
	if h.minLatency <= 0 {
		return
	}
	remaining := h.minLatency - time.Since(start)
	if remaining <= 0 {
		return
	}
	select {
	case <-r.Context().Done():
	case <-time.After(remaining):
	}
}

func validateTurnRequest(req *TurnRequest) string {
	if strings.TrimSpace(req.SessionID) == "" {
		return "sessionId is required"
	}
	if strings.TrimSpace(req.Message.Text) == "" {
		return "message.text is required"
	}
	switch req.Message.Sender {
	case domain.SenderScammer, domain.SenderUser:
	case "":
		return "message.sender is required"
	default:
		return "message.sender must be \"scammer\" or \"user\""
	}
	return ""
}
