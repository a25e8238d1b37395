// Package preferences is the process-wide preferences accessor.
//
// Application code reads and writes preferences through Standard, or through
// FromContext when a store is passed explicitly. The store behind Standard
// can only be replaced with Override, which hands back an OverrideHandle
// whose Restore puts the previous store back. Tests normally go through
// preferences/mock instead of calling Override directly.
package preferences

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/TykTechnologies/preferences/config"
	"github.com/TykTechnologies/preferences/connector"
	"github.com/TykTechnologies/preferences/internal/driver/local"
	"github.com/TykTechnologies/preferences/logging"
	"github.com/TykTechnologies/preferences/persistent"
)

// Store is the capability set shared by the durable store and its test
// double. None of the accessors fail: an absent key, or a key holding
// another kind, reads as nil, false or 0.
type Store interface {
	Object(key string) interface{}
	SetObject(key string, v interface{})

	Bool(key string) bool
	SetBool(key string, v bool)

	Integer(key string) int
	SetInteger(key string, v int)

	Remove(key string)

	// Synchronize flushes pending writes to durable media, if there is any.
	Synchronize() error
}

var _ Store = (*persistent.Store)(nil)

// slot holds the overriding store. Empty means the default store.
type slot struct {
	store Store
}

var current atomic.Pointer[slot]

// Standard returns the current store.
func Standard() Store {
	if s := current.Load(); s != nil {
		return s.store
	}

	return defaultStore()
}

var defaultStore = sync.OnceValue(func() Store {
	return openOrFallback(context.Background(), config.Load)
})

// openOrFallback opens the configured store, or an empty in-memory one when
// the configuration cannot be loaded or its backend cannot be reached.
func openOrFallback(ctx context.Context, load func() (*config.Config, error)) Store {
	cfg, err := load()
	if err == nil {
		var store *persistent.Store
		if store, err = Open(ctx, cfg); err == nil {
			return store
		}
	}

	logger := logging.GetLogger("preferences")
	logger.Warn().Err(err).Msg("configured preferences backend unavailable, using in-memory store")

	return persistent.New(local.NewLockFreeStore())
}

// Open builds the backend described by cfg, checks it answers and loads the
// store from it.
func Open(ctx context.Context, cfg *config.Config) (*persistent.Store, error) {
	backend, err := connector.NewConnector(ctx, cfg.Backend, cfg.Options()...)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.SyncTimeout)
	defer cancel()

	if err := backend.Ping(pingCtx); err != nil {
		backend.Close(ctx)
		return nil, fmt.Errorf("reaching %s backend: %w", cfg.Backend, err)
	}

	store, err := persistent.Open(ctx, backend, persistent.WithSyncTimeout(cfg.SyncTimeout))
	if err != nil {
		backend.Close(ctx)
		return nil, err
	}

	return store, nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Lookup returns the store carried by ctx, if any.
func Lookup(ctx context.Context) (Store, bool) {
	s, ok := ctx.Value(contextKey{}).(Store)
	return s, ok && s != nil
}

// FromContext returns the store carried by ctx, or Standard.
func FromContext(ctx context.Context) Store {
	if s, ok := Lookup(ctx); ok {
		return s
	}

	return Standard()
}
