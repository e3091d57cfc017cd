// Package features extracts the boolean semantic flags used both as feature
// columns and as the standard/complex predictor selector, plus the fixed
// nickname table those flags draw on.
package features

import (
	"strings"

	"github.com/meridianiq/emailpredict/internal/predictengine/normalize"
)

// Flags are the three boolean signals derived from a raw name string.
type Flags struct {
	HasGermanChar     bool
	HasNFKDNormalized bool
	HasNickname       bool
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.HasGermanChar || f.HasNFKDNormalized || f.HasNickname
}

// Extract derives Flags from a raw, undecomposed name. HasNFKDNormalized is
// computed against the plain lowercased input, not against the
// German-substituted form — this is a deliberate, preserved quirk of the
// model this package's caller was trained against; see the module's design
// notes on Open Question (a).
func Extract(fullName string) Flags {
	if fullName == "" {
		return Flags{}
	}

	lower := normalize.ToLower(fullName)

	var flags Flags
	flags.HasGermanChar = normalize.ReplaceGermanChars(lower) != lower
	flags.HasNFKDNormalized = normalize.NFKDNormalize(lower) != lower

	if firstToken := extractFirstToken(lower); firstToken != "" {
		flags.HasNickname = len(findNicknames(firstToken)) > 0
	}

	return flags
}

func extractFirstToken(lower string) string {
	trimmed := strings.TrimLeft(lower, " ")
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, ' '); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
