// Package cache stores extracted document text so repeated
// verification runs don't re-OCR the same files.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Cache defines the interface for extracted-text caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey generates a cache key from a document path and its
// current metadata. Modifying the file (mtime or size change)
// invalidates the old entry naturally.
func DocumentKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	raw := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	hash := sha256.Sum256([]byte(raw))
	return "ltvverify:v1:" + hex.EncodeToString(hash[:]), nil
}
