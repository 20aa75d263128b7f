// Package strategy turns accumulated intelligence into a tactical
// directive and the generation instructions that carry it out.
package strategy

import (
	"strings"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/intel"
)

// Directive is the reply strategy for one turn.
type Directive string

const (
	// DirectiveDeflectToPaymentChannel: a link arrived but no payment
	// identifier yet. Fabricate a failure opening the link and demand a
	// bank/UPI alternative.
	DirectiveDeflectToPaymentChannel Directive = "deflect-to-payment-channel"

	// DirectiveStallIndefinitely: payment details are in hand. Never
	// ask for them again; invent a fresh obstacle every turn.
	DirectiveStallIndefinitely Directive = "stall-indefinitely"

	// DirectiveSolicitPaymentInfo: nothing captured yet. Act eager to
	// pay and ask for a UPI or bank identifier.
	DirectiveSolicitPaymentInfo Directive = "solicit-payment-info"
)

// Decision is a directive plus its natural-language rationale.
type Decision struct {
	Directive Directive
	Rationale string
}

// History bounding for the generation prompt. Only a suffix of the
// conversation is forwarded, each turn clipped, to bound token cost.
const (
	maxHistoryTurns    = 6
	maxTurnChars       = 240
	maxOwnTurnExamples = 5
)

// Select evaluates the decision table in precedence order and returns
// the directive for the current intelligence record. Pure and
// deterministic.
func Select(in domain.Intelligence) Decision {
	hasCrypto := hasCryptoIndicator(in)

	switch {
	case len(in.PhishingLinks) > 0 && !in.HasPaymentIdentifier() && !hasCrypto:
		return Decision{
			Directive: DirectiveDeflectToPaymentChannel,
			Rationale: "a link was sent but no payment identifier is captured yet; claim the link fails and push for a bank or UPI alternative",
		}
	case in.HasPaymentIdentifier() || hasCrypto:
		return Decision{
			Directive: DirectiveStallIndefinitely,
			Rationale: "payment details are already captured; keep the scammer waiting with a new believable obstacle and never re-request known identifiers",
		}
	default:
		return Decision{
			Directive: DirectiveSolicitPaymentInfo,
			Rationale: "no payment route is known; show eagerness to pay and ask for a UPI ID or account number",
		}
	}
}

func hasCryptoIndicator(in domain.Intelligence) bool {
	for _, kw := range in.SuspiciousKeywords {
		if strings.HasPrefix(kw, intel.TagBTC) || strings.HasPrefix(kw, intel.TagETH) {
			return true
		}
	}
	return false
}

// directiveInstructions maps each directive to its instruction
// template. One table so the wording cannot drift between call sites.
var directiveInstructions = map[Directive]string{
	DirectiveDeflectToPaymentChannel: "The link they sent does not open for you. Tell them the page keeps loading or shows an error, sound apologetic, and ask for a direct UPI ID or bank account number so you can pay another way.",
	DirectiveStallIndefinitely:       "You already have their payment details. Do NOT ask for any UPI ID, account number or link again. Pretend you are trying to pay but invent ONE new, specific technical obstacle (OTP not arriving, app showing server busy, bank helpline on the other phone...). It must be an obstacle you have not used before in this conversation.",
	DirectiveSolicitPaymentInfo:      "You are eager to cooperate and ready to pay. Ask them which UPI ID or bank account number you should send the money to. Sound slightly confused about the procedure.",
}

// Instruction returns the generation instruction for d.
func (d Directive) Instruction() string {
	if s, ok := directiveInstructions[d]; ok {
		return s
	}
	return directiveInstructions[DirectiveSolicitPaymentInfo]
}

// BuildUserPrompt assembles the per-turn user instruction: bounded
// conversation context, the directive's instruction, and an advisory
// do-not-repeat list built from the honeypot's own prior turns. The
// repetition constraint is prompt-level discouragement only.
func BuildUserPrompt(session *domain.Session, decision Decision) string {
	var b strings.Builder

	b.WriteString("Recent conversation:\n")
	for _, m := range recentTurns(session.Messages) {
		role := "Them"
		if m.Sender == domain.SenderUser {
			role = "You"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(clip(m.Text, maxTurnChars))
		b.WriteString("\n")
	}

	b.WriteString("\nTheir latest message: ")
	b.WriteString(clip(session.LastUserMessage, maxTurnChars))
	b.WriteString("\n\nWhat to do now: ")
	b.WriteString(decision.Directive.Instruction())

	own := session.OwnTurns()
	if len(own) > 0 {
		if len(own) > maxOwnTurnExamples {
			own = own[len(own)-maxOwnTurnExamples:]
		}
		b.WriteString("\n\nExcuses and phrasings you already used, do not repeat them:\n")
		for _, turn := range own {
			b.WriteString("- ")
			b.WriteString(clip(turn, maxTurnChars))
			b.WriteString("\n")
		}
	}

	b.WriteString("\nReply with the next message only, in character, one or two short sentences.")
	return b.String()
}

func recentTurns(messages []domain.Message) []domain.Message {
	if len(messages) <= maxHistoryTurns {
		return messages
	}
	return messages[len(messages)-maxHistoryTurns:]
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
