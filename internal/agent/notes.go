package agent

import (
	"strings"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/intel"
)

// Notes builds the human-readable summary of what the scammer did,
// one clause per intelligence category present.
func Notes(in domain.Intelligence) string {
	var notes []string
	if len(in.UpiIDs) > 0 {
		notes = append(notes, "Asked for UPI.")
	}
	if len(in.BankAccounts) > 0 {
		notes = append(notes, "Provided Bank Info.")
	}
	if len(in.PhishingLinks) > 0 {
		notes = append(notes, "Sent Link.")
	}
	if len(in.PhoneNumbers) > 0 {
		notes = append(notes, "Shared Phone Number.")
	}

	keywords := strings.Join(in.SuspiciousKeywords, " ")
	if strings.Contains(keywords, intel.TagGiftCode) || strings.Contains(keywords, intel.TagGiftBrand) {
		notes = append(notes, "Demanded Gift Cards.")
	}
	if strings.Contains(keywords, "Crypto") {
		notes = append(notes, "Demanded Crypto.")
	}
	if strings.Contains(keywords, intel.TagRemoteApp) {
		notes = append(notes, "Attempted Remote Access.")
	}

	if len(notes) == 0 {
		return "Scam detected, engaging."
	}
	return "Scammer behavior identified: " + strings.Join(notes, " ")
}
