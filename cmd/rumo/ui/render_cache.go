package ui

import (
	"hash/fnv"
	"sync"
)

// RenderCache memoizes rendered markdown keyed by a hash of its inputs.
// Glamour rendering is slow enough to notice on every keypress.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
	hits    int
}

// NewRenderCache creates a cache holding at most maxSize entries. When
// full, the cache is emptied before the next insert.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RenderCache{entries: make(map[uint64]string), maxSize: maxSize}
}

// ComputeKey hashes strings, ints and bools with FNV-1a. Other types are
// ignored.
func ComputeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	var b [8]byte

	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
			h.Write([]byte{0})
		case int:
			u := uint64(v)
			for i := range b {
				b[i] = byte(u >> (8 * i))
			}
			h.Write(b[:])
		case bool:
			if v {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return h.Sum64()
}

// Get retrieves cached content if available.
func (rc *RenderCache) Get(key uint64) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	content, ok := rc.entries[key]
	if ok {
		rc.hits++
	}
	return content, ok
}

// Set stores rendered content in the cache.
func (rc *RenderCache) Set(key uint64, content string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.entries[key]; !ok && len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = content
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Hits returns how many lookups were served from the cache.
func (rc *RenderCache) Hits() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits
}

// GetOrCompute retrieves from cache or computes if missing. Errors are
// not cached.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() (string, error)) (string, error) {
	if content, ok := rc.Get(key); ok {
		return content, nil
	}
	content, err := compute()
	if err != nil {
		return "", err
	}
	rc.Set(key, content)
	return content, nil
}
