package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/intel"
)

func TestSelectLinkWithoutPaymentDeflects(t *testing.T) {
	t.Parallel()

	in := domain.NewIntelligence()
	in.PhishingLinks = []string{"http://x"}

	got := Select(in)
	assert.Equal(t, DirectiveDeflectToPaymentChannel, got.Directive)
	assert.NotEmpty(t, got.Rationale)
}

func TestSelectPaymentIdentifierFlipsToStall(t *testing.T) {
	t.Parallel()

	in := domain.NewIntelligence()
	in.PhishingLinks = []string{"http://x"}
	in.UpiIDs = []string{"scammer@okicici"}

	assert.Equal(t, DirectiveStallIndefinitely, Select(in).Directive)

	in = domain.NewIntelligence()
	in.BankAccounts = []string{"987654321012345"}
	assert.Equal(t, DirectiveStallIndefinitely, Select(in).Directive)
}

func TestSelectCryptoIndicatorStalls(t *testing.T) {
	t.Parallel()

	in := domain.NewIntelligence()
	in.PhishingLinks = []string{"http://x"}
	in.SuspiciousKeywords = []string{intel.TagBTC + "1A1zP1eP5QGefi2DMPTfTL5SLmv7Divf"}

	assert.Equal(t, DirectiveStallIndefinitely, Select(in).Directive)
}

func TestSelectEmptyIntelligenceSolicits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DirectiveSolicitPaymentInfo, Select(domain.NewIntelligence()).Directive)
}

func TestSelectNonCryptoKeywordsDoNotStall(t *testing.T) {
	t.Parallel()

	in := domain.NewIntelligence()
	in.PhishingLinks = []string{"http://x"}
	in.SuspiciousKeywords = []string{intel.TagRemoteApp + "anydesk"}

	assert.Equal(t, DirectiveDeflectToPaymentChannel, Select(in).Directive)
}

func TestInstructionTableCoversAllDirectives(t *testing.T) {
	t.Parallel()

	for _, d := range []Directive{
		DirectiveDeflectToPaymentChannel,
		DirectiveStallIndefinitely,
		DirectiveSolicitPaymentInfo,
	} {
		assert.NotEmpty(t, d.Instruction(), "directive %q has no instruction", d)
	}
	assert.Equal(t, DirectiveSolicitPaymentInfo.Instruction(), Directive("unknown").Instruction())
}

func TestBuildUserPromptBoundsHistory(t *testing.T) {
	t.Parallel()

	s := domain.NewSession("s1")
	for i := 0; i < 20; i++ {
		s.Append(domain.Message{Sender: domain.SenderScammer, Text: strings.Repeat("x", 500)})
	}
	s.Append(domain.Message{Sender: domain.SenderScammer, Text: "pay now"})

	prompt := BuildUserPrompt(s, Select(s.Intelligence))
	assert.Contains(t, prompt, "pay now")
	assert.Less(t, len(prompt), maxHistoryTurns*(maxTurnChars+20)+2000,
		"prompt must stay bounded regardless of history length")
}

func TestBuildUserPromptCarriesAntiRepetitionContext(t *testing.T) {
	t.Parallel()

	s := domain.NewSession("s1")
	s.Append(domain.Message{Sender: domain.SenderScammer, Text: "send money"})
	s.Append(domain.Message{Sender: domain.SenderUser, Text: "My glasses are lost, one moment."})
	s.Append(domain.Message{Sender: domain.SenderScammer, Text: "hurry up"})

	prompt := BuildUserPrompt(s, Decision{Directive: DirectiveStallIndefinitely})
	require.Contains(t, prompt, "do not repeat")
	assert.Contains(t, prompt, "My glasses are lost, one moment.")
}

func TestBuildUserPromptNoOwnTurnsOmitsRepetitionBlock(t *testing.T) {
	t.Parallel()

	s := domain.NewSession("s1")
	s.Append(domain.Message{Sender: domain.SenderScammer, Text: "hello sir"})

	prompt := BuildUserPrompt(s, Decision{Directive: DirectiveSolicitPaymentInfo})
	assert.NotContains(t, prompt, "do not repeat")
}

func TestPersonaSystemInstruction(t *testing.T) {
	t.Parallel()

	got := DefaultPersona.SystemInstruction()
	assert.Contains(t, got, "Arthur")
	assert.Contains(t, got, "72")
	assert.Contains(t, got, "NEVER reveal you are an AI")
}
