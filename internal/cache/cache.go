package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores parsed paragraph streams keyed by document content
type Cache interface {
	Get(key string) ([]string, bool)
	Set(key string, paragraphs []string, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// Key derives a cache key from the raw bytes of a document and its format
func Key(format string, data []byte) string {
	hash := sha256.Sum256(data)
	return "irec:doc:v1:" + format + ":" + hex.EncodeToString(hash[:])
}
