// Package kv defines the durable key-value seam shared by the role store,
// allowlist, and quota ledger. Keys are namespaced by the callers
// ("role:", "allowlist:", "quota:").
package kv

import "context"

// Store is the minimal contract the pipeline needs from durable storage.
// Get distinguishes an absent key from a store failure: absence is a valid
// default state for roles and counters, a failure must abort the request.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Put writes the value unconditionally.
	Put(ctx context.Context, key, value string) error
	// Incr atomically increments an integer counter, creating it at 1,
	// and returns the post-increment value.
	Incr(ctx context.Context, key string) (int64, error)
}
