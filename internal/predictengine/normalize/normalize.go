// Package normalize implements the string-cleaning primitives shared by the
// name decomposer and the investor feature extractor: ASCII lowercasing,
// Germanic-to-ASCII transliteration, Unicode NFKD folding, and delimiter
// tokenisation. All functions here are pure.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// germanMapping is a single from->to replacement in the Germanic
// transliteration table. Order matters: matching is greedy left-to-right over
// this table against the remaining input.
type germanMapping struct {
	from string
	to   string
}

// GermanASCIIMappings is the fixed transliteration table applied by
// ReplaceGermanChars.
var GermanASCIIMappings = []germanMapping{
	{"ü", "ue"},
	{"ö", "oe"},
	{"ä", "ae"},
	{"ß", "ss"},
	{"ø", "o"},
	{"å", "aa"},
}

// ToLower lowercases ASCII bytes 'A'-'Z' only; any other byte, including the
// leading byte of a multi-byte UTF-8 sequence, passes through unchanged.
func ToLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ReplaceGermanChars performs a greedy left-to-right replacement of the
// Germanic character table against lower. Bytes that match no pattern are
// copied through as-is.
func ReplaceGermanChars(lower string) string {
	var out strings.Builder
	out.Grow(len(lower))

	i := 0
	for i < len(lower) {
		matched := false
		for _, m := range GermanASCIIMappings {
			if i+len(m.from) <= len(lower) && lower[i:i+len(m.from)] == m.from {
				out.WriteString(m.to)
				i += len(m.from)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(lower[i])
			i++
		}
	}
	return out.String()
}

// StripToASCII drops every byte >= 0x80 from input.
func StripToASCII(input string) string {
	var out strings.Builder
	out.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if input[i] < 128 {
			out.WriteByte(input[i])
		}
	}
	return out.String()
}

// NFKDNormalize applies Unicode NFKD decomposition followed by ASCII
// stripping. The reference implementation falls back to the input unchanged
// if the underlying Unicode library fails; x/text/unicode/norm has no
// failure mode for well-formed input, so the recover here only guards
// against pathologically malformed byte sequences reaching it.
func NFKDNormalize(lower string) (result string) {
	defer func() {
		if recover() != nil {
			result = lower
		}
	}()
	return StripToASCII(norm.NFKD.String(lower))
}

// Split tokenises s on delim, collapsing runs of the delimiter and dropping
// leading/trailing empty tokens.
func Split(s string, delim byte) []string {
	var result []string
	start := 0
	n := len(s)
	for start < n {
		for start < n && s[start] == delim {
			start++
		}
		if start >= n {
			break
		}
		end := start
		for end < n && s[end] != delim {
			end++
		}
		result = append(result, s[start:end])
		start = end
	}
	return result
}
