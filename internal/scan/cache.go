package scan

import (
	"encoding/hex"
	"sort"
	"strings"
	"sync"

	"github.com/exposurescan/exposurescan/internal/model"
	"github.com/exposurescan/exposurescan/internal/search"
	"golang.org/x/crypto/sha3"
)

// queryCache memoizes aggregator results per (query, provider set) within
// one Scanner. Different queries over a profile often share providers, and
// re-running a scan against the same Scanner must not redo identical
// searches.
//
// The cache is guarded by a mutex so a Scanner instance can serve
// concurrent scans.
type queryCache struct {
	mu      sync.Mutex
	entries map[string][]model.Candidate
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string][]model.Candidate)}
}

// key builds the cache key from the query and the sorted provider names,
// so provider selection order does not fragment the cache. The key is
// hashed so the raw query text (which contains identity attributes) never
// sits in map storage longer than it has to.
func (c *queryCache) key(query string, providers []search.Provider) string {
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	sum := sha3.Sum256([]byte(query + "|" + strings.Join(names, ",")))
	return hex.EncodeToString(sum[:])
}

// get returns the cached candidates for the key, if present.
func (c *queryCache) get(key string) ([]model.Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	candidates, ok := c.entries[key]
	return candidates, ok
}

// put stores candidates under the key.
func (c *queryCache) put(key string, candidates []model.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = candidates
}
