package agent

import (
	"regexp"
	"strings"
)

// Known label artifacts the model sometimes prefixes to a reply: role
// markers, persona name echoes, instruction echoes. Each pattern is
// anchored so only leading artifacts are stripped.
var artifactPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:arthur|assistant|agent|system|user|reply|response|answer)\s*[:\-]\s*`),
	regexp.MustCompile(`(?i)^\s*\[(?:arthur|assistant|agent)\]\s*:?\s*`),
	regexp.MustCompile(`(?i)^\s*(?:as arthur[,:]|here is (?:my|the) (?:reply|response)[,:])\s*`),
}

// Sanitize cleans raw generated text: leading label artifacts are
// stripped repeatedly until none match, then a single pair of wrapping
// quote characters is removed if the entire reply is quoted.
func Sanitize(raw string) string {
	out := strings.TrimSpace(raw)

	for {
		stripped := out
		for _, re := range artifactPrefixes {
			stripped = re.ReplaceAllString(stripped, "")
		}
		if stripped == out {
			break
		}
		out = strings.TrimSpace(stripped)
	}

	out = stripWrappingQuotes(out)
	return strings.TrimSpace(out)
}

func stripWrappingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'' || first == '`') {
		return s[1 : len(s)-1]
	}
	// Curly quotes come in as multi-byte runes.
	if strings.HasPrefix(s, "“") && strings.HasSuffix(s, "”") {
		return strings.TrimSuffix(strings.TrimPrefix(s, "“"), "”")
	}
	return s
}
