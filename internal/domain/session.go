// Package domain defines the core honeypot data model.
package domain

import (
	"time"
)

// Message senders. The scammer is the counterpart being engaged; "user"
// is the honeypot's own persona side of the conversation.
const (
	SenderScammer = "scammer"
	SenderUser    = "user"
)

// Message is a single turn in a conversation. Immutable once appended.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Session holds all per-conversation state. Sessions are keyed by an
// opaque caller-supplied identifier and owned exclusively by the store;
// other components receive a reference, compute, and hand values back
// to the orchestrator.
type Session struct {
	SessionID       string       `json:"sessionId"`
	StartTime       time.Time    `json:"startTime"`
	Messages        []Message    `json:"messages"`
	MessageCount    int          `json:"messageCount"`
	ScamDetected    bool         `json:"scamDetected"`
	Reported        bool         `json:"reported"`
	LastUserMessage string       `json:"lastUserMessage"`
	Intelligence    Intelligence `json:"intelligence"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NewSession creates a session with empty state and the clock started.
func NewSession(sessionID string) *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID:    sessionID,
		StartTime:    now,
		Messages:     []Message{},
		Intelligence: NewIntelligence(),
		UpdatedAt:    now,
	}
}

// Append records an incoming message and refreshes the derived fields.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.MessageCount++
	s.LastUserMessage = msg.Text
	s.UpdatedAt = time.Now().UTC()
}

// AppendReply records the honeypot's own outgoing reply. Unlike
// Append it leaves LastUserMessage alone.
func (s *Session) AppendReply(text string) {
	s.Messages = append(s.Messages, Message{Sender: SenderUser, Text: text})
	s.MessageCount++
	s.UpdatedAt = time.Now().UTC()
}

// ReplayHistory adopts prior conversation history as the session's
// backlog. This is a one-time catch-up: it only applies when the
// session has recorded nothing yet.
func (s *Session) ReplayHistory(history []Message) {
	if len(s.Messages) > 0 || len(history) == 0 {
		return
	}
	s.Messages = append(s.Messages, history...)
	s.MessageCount = len(history)
	s.UpdatedAt = time.Now().UTC()
}

// OwnTurns returns the honeypot's own prior replies, oldest first.
// The strategy layer forwards these as anti-repetition context.
func (s *Session) OwnTurns() []string {
	var turns []string
	for _, m := range s.Messages {
		if m.Sender == SenderUser {
			turns = append(turns, m.Text)
		}
	}
	return turns
}

// EngagementSeconds reports how long the session has been running.
func (s *Session) EngagementSeconds(now time.Time) int {
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return int(d.Seconds())
}

// Intelligence is the accumulated structured intelligence for one
// session: five parallel append-only sets, insertion order preserved.
// Field names follow the external reporting schema.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UpiIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewIntelligence returns an empty record with non-nil slices so it
// serializes as [] rather than null.
func NewIntelligence() Intelligence {
	return Intelligence{
		BankAccounts:       []string{},
		UpiIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// Merge unions other into the record. Duplicates are dropped, insertion
// order is preserved, and merging the same record twice is a no-op.
func (in *Intelligence) Merge(other Intelligence) {
	in.BankAccounts = appendUnique(in.BankAccounts, other.BankAccounts...)
	in.UpiIDs = appendUnique(in.UpiIDs, other.UpiIDs...)
	in.PhishingLinks = appendUnique(in.PhishingLinks, other.PhishingLinks...)
	in.PhoneNumbers = appendUnique(in.PhoneNumbers, other.PhoneNumbers...)
	in.SuspiciousKeywords = appendUnique(in.SuspiciousKeywords, other.SuspiciousKeywords...)
}

// AddKeywords appends tagged indicators to the suspicious-keyword set.
func (in *Intelligence) AddKeywords(keywords ...string) {
	in.SuspiciousKeywords = appendUnique(in.SuspiciousKeywords, keywords...)
}

// HasPaymentIdentifier reports whether a UPI handle or bank account has
// been captured.
func (in *Intelligence) HasPaymentIdentifier() bool {
	return len(in.UpiIDs) > 0 || len(in.BankAccounts) > 0
}

// IsEmpty reports whether nothing has been captured yet.
func (in *Intelligence) IsEmpty() bool {
	return len(in.BankAccounts) == 0 && len(in.UpiIDs) == 0 &&
		len(in.PhishingLinks) == 0 && len(in.PhoneNumbers) == 0 &&
		len(in.SuspiciousKeywords) == 0
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, existing := range dst {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
