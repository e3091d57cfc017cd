// Package domainresolver resolves a raw firm name to an email domain via
// exact lookup against a firm directory, a memoised fuzzy-match cache, or an
// edit-distance similarity scan over the directory as a last resort.
package domainresolver

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/meridianiq/emailpredict/internal/predictengine/metadata"
)

// Result is the outcome of a domain resolution: the resolved domain, the
// firm-directory key it was matched to, and a confidence score in [0, 100].
type Result struct {
	Domain       string
	MatchedFirm  string
	Score        float64
}

// Resolver resolves firm names to domains against a fixed directory, caching
// fuzzy-match results across calls. The directory is read-only after
// construction; the cache is the only mutable state and is guarded by a
// narrow mutex (spec.md §5, §9).
type Resolver struct {
	directory map[string]string // normalized firm key -> domain
	keys      []string          // directory keys, sorted, for deterministic fuzzy-match iteration order

	mu    sync.Mutex
	cache map[string]metadata.CacheEntry
}

// New constructs a Resolver from a firm directory and an optional
// pre-populated fuzzy-match cache (nil is treated as empty).
func New(directory map[string]string, cache map[string]metadata.CacheEntry) *Resolver {
	keys := make([]string, 0, len(directory))
	for k := range directory {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if cache == nil {
		cache = make(map[string]metadata.CacheEntry)
	}

	return &Resolver{
		directory: directory,
		keys:      keys,
		cache:     cache,
	}
}

// Resolve implements the exact -> cache -> fuzzy algorithm of spec.md §4.5.
// A fuzzy match is memoised into the cache before returning.
func (r *Resolver) Resolve(rawFirmName string) Result {
	key := metadata.NormalizeFirmName(rawFirmName)

	if domain, ok := r.directory[key]; ok {
		return Result{Domain: domain, MatchedFirm: key, Score: 100}
	}

	r.mu.Lock()
	if entry, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return Result{Domain: entry.Domain, MatchedFirm: entry.CanonicalFirm, Score: entry.MatchScore}
	}
	r.mu.Unlock()

	result := r.fuzzyMatch(key)

	r.mu.Lock()
	r.cache[key] = metadata.CacheEntry{
		Domain:        result.Domain,
		CanonicalFirm: result.MatchedFirm,
		MatchScore:    result.Score,
	}
	r.mu.Unlock()

	return result
}

// fuzzyMatch scans the directory in a fixed, alphabetic key order so that a
// tied `>=` comparison — a directory-order artifact, not a semantic
// guarantee, per the module's Open Question (c) — is at least reproducible.
func (r *Resolver) fuzzyMatch(query string) Result {
	var best Result
	for _, key := range r.keys {
		score := similarityRatio(query, key)
		if score >= best.Score {
			best = Result{Domain: r.directory[key], MatchedFirm: key, Score: score}
		}
	}
	return best
}

// similarityRatio is a normalised edit-distance ratio scaled to [0, 100],
// equivalent in shape to the classic Levenshtein ratio metric.
func similarityRatio(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return (1 - float64(distance)/float64(maxLen)) * 100
}
