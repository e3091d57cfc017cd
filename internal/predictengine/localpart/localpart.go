// Package localpart renders a candidate template's token sequence against a
// decomposed name into an email local part.
package localpart

import (
	"strings"

	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
	"github.com/meridianiq/emailpredict/internal/predictengine/namedecomp"
	"github.com/meridianiq/emailpredict/internal/predictengine/normalize"
)

// Render walks tokenSeq against name and returns the rendered local part.
// The second return value is false when the name lacks enough components for
// the template (e.g. a template referencing a middle name on a two-part
// name) — the caller should drop that template rather than emit a partial
// address.
//
// Only the separator/full-vs-initial distinction matters here: a
// TemplateToken's UseOriginal/UseNFKD/UseTranslit/UseNickname/
// UseSurnameParticle flags are parsed from the metadata store but are no
// longer consulted during rendering, matching current production behavior.
func Render(name namedecomp.Decomposed, tokenSeq []metadata.TemplateToken) (string, bool) {
	var b strings.Builder

	for _, token := range tokenSeq {
		if token.IsSeparator() {
			b.WriteString(token.Separator)
			continue
		}

		group := nameGroup(name, token.Group)
		if token.Index < 0 || token.Index >= len(group) {
			return "", false
		}
		raw := group[token.Index]

		var transformed string
		if token.UseInitial {
			if raw == "" {
				return "", false
			}
			transformed = raw[:1]
		} else {
			transformed = raw
		}

		b.WriteString(normalize.ToLower(transformed))
	}

	return b.String(), true
}

func nameGroup(name namedecomp.Decomposed, group metadata.Group) []string {
	switch group {
	case metadata.GroupFirst:
		return name.FirstNames
	case metadata.GroupMiddle:
		return name.MiddleNames
	case metadata.GroupLast:
		return name.LastNames
	default:
		return nil
	}
}
