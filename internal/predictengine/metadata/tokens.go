package metadata

import (
	"fmt"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/predictengine/normalize"
)

// ParseTokenSequence parses the raw token strings stored in a template's
// metadata blob into structured TemplateToken values (§4.9 of the module's
// design notes). An invalid group, unknown flag, missing index, or
// non-numeric index is a fatal configuration error.
func ParseTokenSequence(tokens []string) ([]TemplateToken, error) {
	parsed := make([]TemplateToken, 0, len(tokens))
	for _, tok := range tokens {
		t, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, t)
	}
	return parsed, nil
}

func parseToken(token string) (TemplateToken, error) {
	if len(token) == 1 && (token[0] == '.' || token[0] == '-' || token[0] == '_') {
		return TemplateToken{Separator: token}, nil
	}

	parts := normalize.Split(token, '_')
	if len(parts) < 2 {
		return TemplateToken{}, fmt.Errorf("%w: invalid template token format: %q", predicterrors.ErrConfiguration, token)
	}

	indexPart := parts[len(parts)-1]
	index, err := parseNonNegativeInt(indexPart)
	if err != nil {
		return TemplateToken{}, fmt.Errorf("%w: invalid template token format: %q", predicterrors.ErrConfiguration, token)
	}

	t := TemplateToken{Index: index}

	groupStr := parts[0]
	switch groupStr {
	case "f":
		t.Group, t.UseInitial = GroupFirst, true
	case "m":
		t.Group, t.UseInitial = GroupMiddle, true
	case "l":
		t.Group, t.UseInitial = GroupLast, true
	case "first":
		t.Group = GroupFirst
	case "middle":
		t.Group = GroupMiddle
	case "last":
		t.Group = GroupLast
	default:
		return TemplateToken{}, fmt.Errorf("%w: invalid group in token: %q", predicterrors.ErrConfiguration, groupStr)
	}

	for _, flag := range parts[1 : len(parts)-1] {
		if flag == "" {
			continue
		}
		switch flag {
		case "original":
			t.UseOriginal = true
		case "nfkd":
			t.UseNFKD = true
		case "translit":
			t.UseTranslit = true
		case "nickname":
			t.UseNickname = true
		case "surp":
			t.UseSurnameParticle = true
		default:
			return TemplateToken{}, fmt.Errorf("%w: unknown normalization flag in token: %q", predicterrors.ErrConfiguration, flag)
		}
	}

	return t, nil
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty index")
	}
	n := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-numeric index %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
