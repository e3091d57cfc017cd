package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
)

// NormalizeFirmName lowercases a raw firm name while preserving whitespace
// and punctuation, matching the canonical-firm and fuzzy-cache key form
// (spec.md §6, Open Question (b) in the design notes).
func NormalizeFirmName(rawFirmName string) string {
	return strings.ToLower(rawFirmName)
}

type canonicalFirmRow struct {
	Domain string `msgpack:"domain"`
}

// LoadFirmDirectory reads the canonical firm->domain map. Keys are
// normalized with NormalizeFirmName; when two entries normalize to the same
// key, which one is kept is not defined (Go map iteration order).
func LoadFirmDirectory(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading canonical firms %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	var rows map[string]canonicalFirmRow
	if err := msgpack.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing canonical firms %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	out := make(map[string]string, len(rows))
	for firm, row := range rows {
		if row.Domain == "" {
			continue
		}
		out[NormalizeFirmName(firm)] = row.Domain
	}
	return out, nil
}

type firmCacheRow struct {
	Domain        string  `msgpack:"domain"`
	CanonicalFirm string  `msgpack:"canonical_firm"`
	MatchScore    float64 `msgpack:"match_score"`
}

// LoadFuzzyMatchCache reads the previously-memoised fuzzy-match cache.
// Last-write-wins on duplicate normalized keys.
func LoadFuzzyMatchCache(path string) (map[string]CacheEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading firm cache %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	var rows map[string]firmCacheRow
	if err := msgpack.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing firm cache %q: %v", predicterrors.ErrConfiguration, path, err)
	}

	out := make(map[string]CacheEntry, len(rows))
	for firm, row := range rows {
		if row.Domain == "" || row.CanonicalFirm == "" {
			continue
		}
		out[NormalizeFirmName(firm)] = CacheEntry{
			Domain:        row.Domain,
			CanonicalFirm: NormalizeFirmName(row.CanonicalFirm),
			MatchScore:    row.MatchScore,
		}
	}
	return out, nil
}
