// Package cache provides the byte caches behind the baseline lexicon memo
// and citation link checks.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a filesystem-safe cache key for raw within a namespace
func Key(namespace, raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return "cwah_v1_" + namespace + "_" + hex.EncodeToString(hash[:])
}

// GetJSON decodes a cached JSON value into out
func GetJSON(c Cache, key string, out interface{}) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// SetJSON stores value as JSON
func SetJSON(c Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return c.Set(key, data, ttl)
}
