// Package cache stores computed results keyed by a hash of their inputs.
//
// Four backends share the [Cache] interface:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// [Open] picks a backend from [Options], usually built from the config file.
// Keys come from a [Keyer] so that equal requests map to equal keys no matter
// which process computed them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// OperationKey generates a key for the result of a matrix operation.
	// The payload (operands and parameters) is hashed; it fails when the
	// payload cannot be encoded.
	OperationKey(op string, payload any) (string, error)

	// RenderKey generates a key for a rendered artifact of a matrix.
	RenderKey(matrixHash string, opts RenderKeyOpts) (string, error)
}

// RenderKeyOpts are the render settings that change the output bytes.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Title     string `json:"title,omitempty"`
	Highlight string `json:"highlight,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:name:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OperationKey implements Keyer.
func (DefaultKeyer) OperationKey(op string, payload any) (string, error) {
	return hashKey("op:"+op, payload)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(matrixHash string, opts RenderKeyOpts) (string, error) {
	return hashKey("render:"+opts.Format, matrixHash, opts)
}
