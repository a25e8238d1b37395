package model

import "context"

const (
	LocalType = "local"
	RedisType = "redis"
	BoltType  = "bolt"
	MongoType = "mongo"
	IPFSType  = "ipfs"
)

// DefaultDomain is the suite name used when none is configured.
const DefaultDomain = "standard"

// Backend is the durable side of a preferences store. Implementations scope
// their data by domain so several suites can share one database.
type Backend interface {
	// Type returns the backend type, one of the *Type constants.
	Type() string
	// Load returns every value stored for the domain.
	Load(ctx context.Context) (map[string]Value, error)
	// Apply writes set and deletes removed in a single round trip where the
	// backend supports it. Removing an absent key is not an error.
	Apply(ctx context.Context, set map[string]Value, removed []string) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend's resources.
	Close(ctx context.Context) error
}
