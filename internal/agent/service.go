package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/detect"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/intel"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/llm"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/report"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/store"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/strategy"
)

const (
	generateTimeout = 5 * time.Second
	reportTimeout   = 10 * time.Second
)

// Service orchestrates one conversation turn end to end.
type Service struct {
	repo       store.Repository
	locks      *store.KeyedMutex
	classifier *detect.Classifier
	generator  llm.Generator
	reporter   *report.Reporter
	persona    strategy.Persona
	elog       *EngagementLogger
	logger     *slog.Logger
}

// Options configure optional service collaborators.
type Options struct {
	Persona          strategy.Persona
	EngagementLogger *EngagementLogger
	Logger           *slog.Logger
}

// NewService wires the orchestrator. repo, classifier and generator
// are required; reporter may be nil to disable external reporting.
func NewService(repo store.Repository, classifier *detect.Classifier, generator llm.Generator, reporter *report.Reporter, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	persona := opts.Persona
	if persona.Name == "" {
		persona = strategy.DefaultPersona
	}
	return &Service{
		repo:       repo,
		locks:      store.NewKeyedMutex(),
		classifier: classifier,
		generator:  generator,
		reporter:   reporter,
		persona:    persona,
		elog:       opts.EngagementLogger,
		logger:     logger,
	}
}

// HandleTurn processes one incoming message and returns the reply plus
// the session's current intelligence snapshot. External failures
// degrade: a generation failure yields FallbackReply and a reporting
// failure is logged, so a non-nil error here only ever means the
// session backend itself is down.
func (s *Service) HandleTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	unlock := s.locks.Lock(in.SessionID)
	defer unlock()

	session, err := s.repo.GetOrCreate(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	session.ReplayHistory(in.History)
	session.Append(in.Message)

	// Scam flag is monotonic: once set, the classifier is skipped.
	if !session.ScamDetected {
		isScam, indicators := s.classifier.Classify(ctx, in.Message.Text)
		if isScam {
			session.ScamDetected = true
			session.Intelligence.AddKeywords(indicators...)
			s.logger.Info("scam detected",
				"session_id", in.SessionID, "indicators", indicators)
		}
	}

	session.Intelligence.Merge(intel.Extract(in.Message.Text))

	decision := strategy.Select(session.Intelligence)
	reply := s.generateReply(ctx, session, decision)
	session.AppendReply(reply)
	notes := Notes(session.Intelligence)

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.maybeReport(session, notes)
	s.logTurn(session, in.Message, reply, decision)

	return &TurnResult{
		Reply:             reply,
		ScamDetected:      session.ScamDetected,
		Intelligence:      session.Intelligence,
		AgentNotes:        notes,
		Directive:         decision.Directive,
		TotalMessages:     session.MessageCount,
		EngagementSeconds: session.EngagementSeconds(time.Now().UTC()),
	}, nil
}

// generateReply invokes the gateway under its own timeout and
// sanitizes the output. Any failure or empty result degrades to the
// fixed fallback line.
func (s *Service) generateReply(ctx context.Context, session *domain.Session, decision strategy.Decision) string {
	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx,
		s.persona.SystemInstruction(),
		strategy.BuildUserPrompt(session, decision))
	if err != nil {
		s.logger.Warn("generation failed, using fallback reply",
			"session_id", session.SessionID, "error", err)
		return FallbackReply
	}

	reply := Sanitize(raw)
	if strings.TrimSpace(reply) == "" {
		return FallbackReply
	}
	return reply
}

// maybeReport hands the session off to the external reporting endpoint
// at most once per session, fire-and-forget with its own timeout so a
// slow endpoint never delays the reply.
func (s *Service) maybeReport(session *domain.Session, notes string) {
	if s.reporter == nil || !session.ScamDetected || session.Reported {
		return
	}
	session.Reported = true
	if err := s.repo.Save(context.Background(), session); err != nil {
		s.logger.Warn("failed to persist reported flag", "session_id", session.SessionID, "error", err)
	}

	payload := report.Payload{
		SessionID:                 session.SessionID,
		ScamDetected:              true,
		TotalMessagesExchanged:    session.MessageCount,
		EngagementDurationSeconds: session.EngagementSeconds(time.Now().UTC()),
		ExtractedIntelligence:     session.Intelligence,
		AgentNotes:                notes,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		// Errors are already logged by the reporter.
		_ = s.reporter.Send(ctx, payload)
	}()
}

func (s *Service) logTurn(session *domain.Session, msg domain.Message, reply string, decision strategy.Decision) {
	if s.elog == nil {
		return
	}
	s.elog.Log(EngagementEvent{
		SessionID:    session.SessionID,
		Direction:    "inbound",
		Text:         msg.Text,
		ScamDetected: session.ScamDetected,
	})
	s.elog.Log(EngagementEvent{
		SessionID:    session.SessionID,
		Direction:    "outbound",
		Text:         reply,
		Directive:    string(decision.Directive),
		ScamDetected: session.ScamDetected,
	})
}
