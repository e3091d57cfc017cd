package domainresolver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_ExactMatch(t *testing.T) {
	r := New(map[string]string{"blackstone": "blackstone.com"}, nil)
	res := r.Resolve("Blackstone")
	require.Equal(t, "blackstone.com", res.Domain)
	require.Equal(t, float64(100), res.Score)
}

func TestResolve_FuzzyMatchAndCaches(t *testing.T) {
	r := New(map[string]string{"blackstone": "blackstone.com", "bain capital": "bain.com"}, nil)
	res := r.Resolve("blackston")
	require.Equal(t, "blackstone.com", res.Domain)
	require.Equal(t, "blackstone", res.MatchedFirm)
	require.Less(t, res.Score, float64(100))

	cached, ok := r.cache["blackston"]
	require.True(t, ok)
	require.Equal(t, res.Domain, cached.Domain)
}

func TestResolve_IdempotentAfterCache(t *testing.T) {
	r := New(map[string]string{"blackstone": "blackstone.com"}, nil)
	first := r.Resolve("blackston")
	second := r.Resolve("blackston")
	require.Equal(t, first, second)
}

func TestResolve_ConcurrentWritesConverge(t *testing.T) {
	r := New(map[string]string{"blackstone": "blackstone.com"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve("blackston")
		}()
	}
	wg.Wait()

	res := r.Resolve("blackston")
	require.Equal(t, "blackstone.com", res.Domain)
}
