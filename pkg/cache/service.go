package cache

import (
	"context"
	"time"
)

// Store is the key/value contract shared by the networked and in-process
// cache backends. Payloads are opaque JSON bytes; both variants implement
// the identical get/set/invalidate semantics.
type Store interface {
	// Get retrieves a payload. A missing key, an expired entry, or an
	// unreadable payload all report found=false.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set writes a payload under the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)

	// Invalidate removes every key whose string prefix matches. Trailing
	// characters after the prefix are unconstrained.
	Invalidate(ctx context.Context, prefix string)
}
