// Package cache provides memory, disk and layered caches for capability
// responses (NLI results, embeddings) and fetched evidence documents. The
// instability signal re-invokes the inference capability four times per
// sentence, so caching is what keeps document scoring affordable.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the common interface over all cache layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a namespaced cache key from any number of input parts. Parts
// are joined with a NUL separator so ("ab","c") and ("a","bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(part))
	}
	return "halidex:v1:" + hex.EncodeToString(h.Sum(nil))
}
