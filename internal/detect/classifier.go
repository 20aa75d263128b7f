// Package detect classifies incoming text as scam or not.
//
// The dominant path is a deterministic keyword scan; it is checked
// first and short-circuits so the usual case costs no network call. An
// optional AI fallback covers texts with zero keyword hits.
package detect

import (
	"context"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/llm"
)

// scamKeywords is the financial/urgency vocabulary of the fast path.
var scamKeywords = []string{
	"blocked", "suspended", "verify", "urgent", "account",
	"upi", "otp", "freeze", "immediately", "bank",
	"kyc", "refund", "lottery", "prize", "expired",
}

// keywordHitThreshold is the number of distinct keyword hits needed to
// flag a scam. A single hit is decisive: one "otp" or "blocked" in a
// cold-contact message is already a strong signal.
const keywordHitThreshold = 1

// AIFlaggedIndicator marks a verdict produced by the AI fallback
// rather than the keyword scan.
const AIFlaggedIndicator = "AI-Flagged-Suspicious"

const fallbackSystemPrompt = "You are a scam detection system. Answer with a single word."

const (
	verdictCacheTTL     = 10 * time.Minute
	verdictCacheCleanup = 30 * time.Minute
)

// Classifier decides scam likelihood for one message text.
type Classifier struct {
	generator llm.Generator
	logger    *slog.Logger
	// verdicts caches AI-fallback results per exact text so replayed or
	// repeated messages do not burn generation quota.
	verdicts *gocache.Cache
}

// New creates a classifier. generator may be nil, in which case only
// the keyword scan runs.
func New(generator llm.Generator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		generator: generator,
		logger:    logger,
		verdicts:  gocache.New(verdictCacheTTL, verdictCacheCleanup),
	}
}

// Classify returns whether text looks like a scam and the matched
// indicators. It never returns an error: any fallback failure degrades
// to (false, nil).
func (c *Classifier) Classify(ctx context.Context, text string) (bool, []string) {
	lower := strings.ToLower(text)

	var hits []string
	for _, kw := range scamKeywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	if len(hits) >= keywordHitThreshold {
		return true, hits
	}

	if c.generator == nil {
		return false, nil
	}
	if c.aiFlagged(ctx, text) {
		return true, []string{AIFlaggedIndicator}
	}
	return false, nil
}

// aiFlagged asks the generation backend for a binary verdict. Any
// failure, timeout, or malformed answer counts as not a scam.
func (c *Classifier) aiFlagged(ctx context.Context, text string) bool {
	if cached, ok := c.verdicts.Get(text); ok {
		return cached.(bool)
	}

	prompt := "Is the following message part of a scam attempt? Reply strictly with TRUE or FALSE.\n\nMessage: " + text
	answer, err := c.generator.Generate(ctx, fallbackSystemPrompt, prompt)
	if err != nil {
		c.logger.Warn("AI classification fallback failed", "error", err)
		return false
	}

	flagged := strings.Contains(strings.ToUpper(answer), "TRUE")
	c.verdicts.Set(text, flagged, gocache.DefaultExpiration)
	return flagged
}
