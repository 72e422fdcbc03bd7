package segment

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache maps (transcript id, content fingerprint) to parsed segments.
// With maxEntries <= 0 it never evicts; only Clear empties it.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]TranscriptSegment
	bounded *lru.Cache[string, []TranscriptSegment]
}

// NewCache creates a cache. maxEntries > 0 bounds it with an LRU policy.
func NewCache(maxEntries int) *Cache {
	c := &Cache{}
	if maxEntries > 0 {
		// lru.New only fails for non-positive sizes
		c.bounded, _ = lru.New[string, []TranscriptSegment](maxEntries)
	} else {
		c.entries = make(map[string][]TranscriptSegment)
	}
	return c
}

// Fingerprint hashes raw transcript content: first 16 bytes of SHA-256, hex encoded.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:16])
}

// CacheKey builds the composite key for a transcript and its content.
func CacheKey(transcriptID int64, content string) string {
	return fmt.Sprintf("%d:%s", transcriptID, Fingerprint(content))
}

// Get returns a copy of the cached segments.
func (c *Cache) Get(transcriptID int64, content string) ([]TranscriptSegment, bool) {
	key := CacheKey(transcriptID, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		segs []TranscriptSegment
		ok   bool
	)
	if c.bounded != nil {
		segs, ok = c.bounded.Get(key)
	} else {
		segs, ok = c.entries[key]
	}
	if !ok {
		return nil, false
	}
	return slices.Clone(segs), true
}

// Put stores segments. Empty lists are ignored so empty input is always reparsed.
func (c *Cache) Put(transcriptID int64, content string, segments []TranscriptSegment) {
	if len(segments) == 0 {
		return
	}
	key := CacheKey(transcriptID, content)
	segs := slices.Clone(segments)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		c.bounded.Add(key, segs)
		return
	}
	c.entries[key] = segs
}

// Clear drops every entry, e.g. under memory pressure.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		c.bounded.Purge()
		return
	}
	clear(c.entries)
}

// Len reports the number of cached transcripts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.entries)
}
