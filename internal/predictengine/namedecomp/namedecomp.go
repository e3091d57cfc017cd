// Package namedecomp splits a cleaned full name into first, middle, and last
// name token vectors, applying an honorific/suffix stoplist and a
// surname-particle heuristic.
package namedecomp

import (
	"strings"

	"github.com/meridianiq/emailpredict/internal/predictengine/normalize"
)

// removableTokens are honorifics and suffixes stripped from the front and
// back of the token list before decomposition.
var removableTokens = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	"phd": true, "md": true, "esq": true, "dr": true, "mr": true, "mrs": true,
	"ms": true, "prof": true, "sir": true,
}

// surnameParticles are the tokens that, once encountered while scanning past
// the first name, pull themselves and every subsequent token into the last
// name. "de la" and "de los" are kept for fidelity with the source dictionary
// even though a single space-delimited token can never equal them — "de" and
// "la"/"los" already match individually.
var surnameParticles = map[string]bool{
	"santa": true, "san": true, "st": true, "von": true, "van": true,
	"de": true, "der": true, "dello": true, "vander": true, "del": true,
	"de la": true, "vom": true, "dela": true, "de los": true, "dos": true,
	"la": true, "los": true, "le": true, "du": true, "di": true, "da": true,
	"mac": true, "al": true, "abu": true, "bin": true, "ibn": true, "della": true,
}

const pasteNoise = "\"'<>"
const trailingPunctuation = ".,;:!?}]"

// Decomposed holds the ordered first/middle/last token vectors produced by
// Decompose.
type Decomposed struct {
	FirstNames  []string
	MiddleNames []string
	LastNames   []string
}

// HasMiddleName reports whether any middle name token was captured.
func (d Decomposed) HasMiddleName() bool { return len(d.MiddleNames) > 0 }

// HasMultipleFirstNames reports whether more than one first name token was captured.
func (d Decomposed) HasMultipleFirstNames() bool { return len(d.FirstNames) > 1 }

// HasMultipleMiddleNames reports whether more than one middle name token was captured.
func (d Decomposed) HasMultipleMiddleNames() bool { return len(d.MiddleNames) > 1 }

// HasMultipleLastNames reports whether more than one last name token was captured.
func (d Decomposed) HasMultipleLastNames() bool { return len(d.LastNames) > 1 }

// Decompose cleans and splits a raw full name. Empty input, or input that
// reduces to zero tokens after cleaning, yields an all-empty Decomposed and
// no error.
func Decompose(rawFullName string) Decomposed {
	cleaned := normalizeFullName(rawFullName)
	if cleaned == "" {
		return Decomposed{}
	}

	parts := normalize.Split(cleaned, ' ')
	if len(parts) == 0 {
		return Decomposed{}
	}

	var d Decomposed

	first := parts[0]
	if strings.Contains(first, "-") {
		for _, p := range strings.Split(first, "-") {
			if p != "" {
				d.FirstNames = append(d.FirstNames, p)
			}
		}
	} else {
		d.FirstNames = append(d.FirstNames, first)
	}

	n := len(parts)
	for i := 1; i < n; i++ {
		if surnameParticles[parts[i]] {
			d.LastNames = append(d.LastNames, parts[i:]...)
			break
		}
		if i < n-1 {
			d.MiddleNames = append(d.MiddleNames, parts[i])
		} else {
			d.LastNames = append(d.LastNames, parts[i])
		}
	}

	return d
}

// normalizeFullName runs the cleaning pipeline: trim, lowercase, German
// substitution, NFKD+ASCII strip, trailing-punctuation drop, paste-noise
// strip, whitespace collapse, then honorific/suffix stripping front and back.
func normalizeFullName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	result := normalize.ToLower(trimmed)
	result = normalize.ReplaceGermanChars(result)
	result = normalize.NFKDNormalize(result)

	for len(result) > 0 && strings.ContainsRune(trailingPunctuation, rune(result[len(result)-1])) {
		result = result[:len(result)-1]
	}

	result = strings.Map(func(r rune) rune {
		if strings.ContainsRune(pasteNoise, r) {
			return -1
		}
		return r
	}, result)

	tokens := normalize.Split(result, ' ')
	tokens = stripRemovableTokens(tokens)
	if len(tokens) == 0 {
		return ""
	}

	return strings.Join(tokens, " ")
}

func stripRemovableTokens(tokens []string) []string {
	start := 0
	end := len(tokens)
	for start < end && isRemovable(tokens[start]) {
		start++
	}
	for end > start && isRemovable(tokens[end-1]) {
		end--
	}
	return tokens[start:end]
}

// isRemovable reports whether token is an honorific or suffix, ignoring any
// trailing periods ("mr." and "mr" both match).
func isRemovable(token string) bool {
	return removableTokens[strings.TrimRight(token, ".")]
}
