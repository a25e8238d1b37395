package persistent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/TykTechnologies/preferences/internal/codec"
	"github.com/TykTechnologies/preferences/logging"
	"github.com/TykTechnologies/preferences/model"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

const defaultSyncTimeout = 5 * time.Second

// Store is the durable preferences store. Reads and writes hit an in-memory
// cache; Synchronize flushes pending changes to the backend.
type Store struct {
	backend     model.Backend
	logger      zerolog.Logger
	syncTimeout time.Duration

	// syncMu serialises flushes so writes reach the backend in order.
	syncMu sync.Mutex

	mu      sync.RWMutex
	values  map[string]model.Value
	dirty   map[string]struct{}
	removed map[string]struct{}
}

type Option func(*Store)

func WithSyncTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.syncTimeout = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns an empty store over backend without reading it. Use it for
// backends known to be empty, such as a fresh in-memory one.
func New(backend model.Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		logger:      logging.GetLogger("persistent"),
		syncTimeout: defaultSyncTimeout,
		values:      map[string]model.Value{},
		dirty:       map[string]struct{}{},
		removed:     map[string]struct{}{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open loads every value of the backend's domain into memory.
func Open(ctx context.Context, backend model.Backend, opts ...Option) (*Store, error) {
	s := New(backend, opts...)

	values, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s preferences: %w", backend.Type(), err)
	}

	if values != nil {
		s.values = values
	}

	s.logger.Debug().Str("backend", backend.Type()).Int("keys", len(s.values)).Msg("preferences loaded")

	return s, nil
}

// BackendType returns the type of the backend behind s.
func (s *Store) BackendType() string {
	return s.backend.Type()
}

func (s *Store) get(key string) model.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values[key]
}

func (s *Store) set(key string, v model.Value) {
	if key == "" {
		s.logger.Warn().Str("kind", v.Kind().String()).Msg("ignoring write to empty preference key")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = v
	s.dirty[key] = struct{}{}
	delete(s.removed, key)
}

// Object returns nil when key is absent or holds a bool or integer.
func (s *Store) Object(key string) interface{} {
	obj, _ := s.get(key).Object()
	return obj
}

// SetObject stores v under key. A nil v removes the key. Objects without a
// JSON representation are dropped with a warning.
func (s *Store) SetObject(key string, v interface{}) {
	if v == nil {
		s.Remove(key)
		return
	}

	value := model.ObjectValue(v)
	if _, err := codec.Encode(value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("ignoring preference object that cannot be stored")
		return
	}

	s.set(key, value)
}

func (s *Store) Bool(key string) bool {
	b, _ := s.get(key).Bool()
	return b
}

func (s *Store) SetBool(key string, v bool) {
	s.set(key, model.BoolValue(v))
}

func (s *Store) Integer(key string) int {
	i, _ := s.get(key).Integer()
	return i
}

func (s *Store) SetInteger(key string, v int) {
	s.set(key, model.IntegerValue(v))
}

func (s *Store) Remove(key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	delete(s.dirty, key)
	s.removed[key] = struct{}{}
}

// Keys returns the stored keys in order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	slices.Sort(keys)

	return keys
}

// Snapshot copies the cache.
func (s *Store) Snapshot() map[string]model.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}

	return out
}

// Pending reports whether changes are waiting for Synchronize.
func (s *Store) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.dirty) > 0 || len(s.removed) > 0
}

// Synchronize writes pending changes to the backend. On failure the changes
// stay pending, unless they were overwritten meanwhile, so a later call
// retries them.
func (s *Store) Synchronize() error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	s.mu.Lock()
	set := make(map[string]model.Value, len(s.dirty))
	for k := range s.dirty {
		set[k] = s.values[k]
	}

	removed := make([]string, 0, len(s.removed))
	for k := range s.removed {
		removed = append(removed, k)
	}

	s.dirty = map[string]struct{}{}
	s.removed = map[string]struct{}{}
	s.mu.Unlock()

	backendType := s.backend.Type()

	// An object mutated after SetObject may no longer encode. It stays in
	// the cache but is not retried, so it cannot hold back other keys.
	for k, v := range set {
		if _, err := codec.Encode(v); err != nil {
			delete(set, k)
			s.logger.Warn().Err(err).Str("backend", backendType).Str("key", k).Msg("skipping preference that cannot be stored")
		}
	}

	if len(set) == 0 && len(removed) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()

	if err := s.backend.Apply(ctx, set, removed); err != nil {
		s.requeue(set, removed)
		synchronizeTotal.WithLabelValues(backendType, "error").Inc()
		s.logger.Error().Err(err).
			Str("backend", backendType).
			Int("set", len(set)).
			Int("removed", len(removed)).
			Msg("synchronize failed")

		return fmt.Errorf("synchronizing %s preferences: %w", backendType, err)
	}

	synchronizeTotal.WithLabelValues(backendType, "ok").Inc()
	synchronizeKeys.WithLabelValues(backendType, "set").Add(float64(len(set)))
	synchronizeKeys.WithLabelValues(backendType, "remove").Add(float64(len(removed)))
	s.logger.Debug().
		Str("backend", backendType).
		Int("set", len(set)).
		Int("removed", len(removed)).
		Msg("preferences synchronized")

	return nil
}

func (s *Store) requeue(set map[string]model.Value, removed []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range set {
		if _, gone := s.removed[k]; gone {
			continue
		}

		if _, ok := s.values[k]; ok {
			s.dirty[k] = struct{}{}
		}
	}

	for _, k := range removed {
		if _, rewritten := s.values[k]; rewritten {
			continue
		}

		s.removed[k] = struct{}{}
	}
}

// Close flushes pending changes and closes the backend.
func (s *Store) Close(ctx context.Context) error {
	syncErr := s.Synchronize()
	closeErr := s.backend.Close(ctx)

	return errors.Join(syncErr, closeErr)
}
