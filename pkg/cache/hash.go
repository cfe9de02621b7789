package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// json sorts map keys, so equal payloads always hash the same.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("cache key %s: %w", prefix, err)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:])), nil
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
