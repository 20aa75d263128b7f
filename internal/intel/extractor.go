// Package intel extracts structured scam intelligence from raw message
// text: payment identifiers, contact points, and tagged fraud markers.
package intel

import (
	"regexp"
	"strings"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

var (
	upiRe   = regexp.MustCompile(`\b[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}\b`)
	phoneRe = regexp.MustCompile(`(?:\+91[\-\s]?)?[6-9][0-9]{9}\b`)
	urlRe   = regexp.MustCompile(`\b(?:https?://|www\.)\S+\b`)

	// Standalone 9-18 digit runs. Wide enough for most banks; overlaps
	// with the phone pattern and is disambiguated below.
	bankRe = regexp.MustCompile(`\b[0-9]{9,18}\b`)

	// 4-6 digit runs: MPIN/OTP candidates, filtered against years and
	// requiring a sensitivity cue for 4-digit runs.
	pinRe = regexp.MustCompile(`\b[0-9]{4,6}\b`)

	ifscRe    = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	panRe     = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	aadhaarRe = regexp.MustCompile(`\b[0-9]{4}\s?[0-9]{4}\s?[0-9]{4}\b`)
	expiryRe  = regexp.MustCompile(`\b(0[1-9]|1[0-2])/?([2-9][0-9])\b`)

	btcRe      = regexp.MustCompile(`\b(?:1|3|bc1)[a-zA-Z0-9]{25,39}\b`)
	ethRe      = regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`)
	giftCodeRe = regexp.MustCompile(`\b[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}\b`)

	nonDigitRe = regexp.MustCompile(`\D`)
)

// remoteApps are remote-desktop tools scammers push victims to install.
var remoteApps = []string{
	"anydesk", "teamviewer", "quicksupport", "alpemix", "rustdesk",
	"screen share", "remote support", "any desk",
}

// giftBrands are gift-card brands commonly demanded as payment.
var giftBrands = []string{
	"google play", "amazon gift", "steam card", "apple card", "itunes",
	"vanilla visa", "play station", "xbox gift", "razer gold",
}

// sensitiveContextWords promote a bare 4-digit run to a potential MPIN.
var sensitiveContextWords = []string{"mpin", "pin", "otp", "code", "password", "cvv"}

// maxPhoneLookalikeDigits is the disambiguation threshold: a bank
// candidate longer than this is too long to be a phone number and is
// kept unconditionally. Heuristic, tunable.
const maxPhoneLookalikeDigits = 12

// Keyword tag prefixes used in Intelligence.SuspiciousKeywords.
const (
	TagIFSC       = "IFSC:"
	TagPAN        = "PAN:"
	TagAadhaar    = "Aadhaar:"
	TagOTP        = "Potential-OTP/PIN:"
	TagMPIN       = "Potential-MPIN:"
	TagBTC        = "Crypto-BTC:"
	TagETH        = "Crypto-ETH:"
	TagGiftCode   = "GiftCard-Code:"
	TagCardExpiry = "Card-Expiry:"
	TagRemoteApp  = "App-Detected:"
	TagGiftBrand  = "Scam-Type:"
)

// Extract scans text and returns every recognized identifier as an
// Intelligence record. Pure and deterministic: no side effects, no
// network, identical input yields identical output, and each field is
// duplicate-free with insertion order preserved.
func Extract(text string) domain.Intelligence {
	out := domain.NewIntelligence()
	lower := strings.ToLower(text)

	out.UpiIDs = uniqueMatches(upiRe, text)
	out.PhoneNumbers = uniqueMatches(phoneRe, text)
	out.PhishingLinks = uniqueMatches(urlRe, text)
	out.BankAccounts = disambiguateBankAccounts(uniqueMatches(bankRe, text), out.PhoneNumbers)

	var keywords []string
	for _, m := range uniqueMatches(ifscRe, text) {
		keywords = append(keywords, TagIFSC+m)
	}
	for _, m := range uniqueMatches(panRe, text) {
		keywords = append(keywords, TagPAN+m)
	}
	for _, m := range uniqueMatches(aadhaarRe, text) {
		keywords = append(keywords, TagAadhaar+m)
	}
	keywords = append(keywords, pinCandidates(text, lower)...)
	for _, m := range uniqueMatches(btcRe, text) {
		keywords = append(keywords, TagBTC+m)
	}
	for _, m := range uniqueMatches(ethRe, text) {
		keywords = append(keywords, TagETH+m)
	}
	for _, m := range uniqueMatches(giftCodeRe, text) {
		keywords = append(keywords, TagGiftCode+m)
	}
	for _, m := range uniqueMatches(expiryRe, text) {
		keywords = append(keywords, TagCardExpiry+m)
	}
	for _, app := range remoteApps {
		if strings.Contains(lower, app) {
			keywords = append(keywords, TagRemoteApp+app)
		}
	}
	for _, brand := range giftBrands {
		if strings.Contains(lower, brand) {
			keywords = append(keywords, TagGiftBrand+brand)
		}
	}
	out.AddKeywords(keywords...)

	return out
}

// pinCandidates applies the MPIN/OTP filtering rules: 4-digit runs that
// look like a year (19xx/20xx) are discarded; 6-digit runs are tagged
// as OTP/PIN unconditionally; 4-digit runs are tagged as MPIN only when
// the surrounding text carries a sensitivity cue word.
func pinCandidates(text, lower string) []string {
	var keywords []string
	hasCue := false
	for _, w := range sensitiveContextWords {
		if strings.Contains(lower, w) {
			hasCue = true
			break
		}
	}
	for _, num := range uniqueMatches(pinRe, text) {
		if len(num) == 4 && (strings.HasPrefix(num, "19") || strings.HasPrefix(num, "20")) {
			continue
		}
		switch len(num) {
		case 6:
			keywords = append(keywords, TagOTP+num)
		case 4:
			if hasCue {
				keywords = append(keywords, TagMPIN+num)
			}
		}
	}
	return keywords
}

// disambiguateBankAccounts drops bank candidates that are really phone
// numbers. A candidate longer than maxPhoneLookalikeDigits is kept
// unconditionally; shorter ones are dropped when they coincide with any
// normalized phone candidate (non-digits stripped, last 10 digits kept)
// in either substring direction.
func disambiguateBankAccounts(candidates, phones []string) []string {
	normalized := make([]string, 0, len(phones))
	for _, p := range phones {
		digits := nonDigitRe.ReplaceAllString(p, "")
		if len(digits) > 10 {
			digits = digits[len(digits)-10:]
		}
		normalized = append(normalized, digits)
	}

	clean := []string{}
	for _, acc := range candidates {
		if len(acc) > maxPhoneLookalikeDigits {
			clean = append(clean, acc)
			continue
		}
		isPhone := false
		for _, p := range normalized {
			if strings.Contains(p, acc) || strings.Contains(acc, p) {
				isPhone = true
				break
			}
		}
		if !isPhone {
			clean = append(clean, acc)
		}
	}
	return clean
}

func uniqueMatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	out := []string{}
	for _, m := range matches {
		dup := false
		for _, existing := range out {
			if existing == m {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}
