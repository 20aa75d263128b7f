// Package agent implements the honeypot reply orchestrator: it updates
// session state, runs detection and extraction, derives the tactical
// directive, and produces the persona's next reply.
package agent

import (
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/strategy"
)

// TurnInput is one incoming message for a session, with optional prior
// history for one-time replay.
type TurnInput struct {
	SessionID string
	Message   domain.Message
	History   []domain.Message
}

// TurnResult is everything the HTTP layer needs to assemble the turn
// response.
type TurnResult struct {
	Reply             string
	ScamDetected      bool
	Intelligence      domain.Intelligence
	AgentNotes        string
	Directive         strategy.Directive
	TotalMessages     int
	EngagementSeconds int
}

// FallbackReply is returned when the generation backend fails. The
// engagement must never see an error or silence.
const FallbackReply = "I am having a bit of trouble hearing you, dear. Can you repeat that?"
