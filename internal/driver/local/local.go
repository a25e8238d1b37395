package local

import (
	"context"
	"sync/atomic"

	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"github.com/dustinxie/lockfree"
)

// LockFreeStore keeps values in process memory. Every instance owns its
// map, so an instance is already a domain of its own. It survives reopening
// a persistent.Store on the same instance, not a process restart.
type LockFreeStore struct {
	store  lockfree.HashMap
	closed atomic.Bool
}

func NewLockFreeStore() *LockFreeStore {
	return &LockFreeStore{
		store: lockfree.NewHashMap(),
	}
}

// Type returns the backend type
func (m *LockFreeStore) Type() string {
	return model.LocalType
}

func (m *LockFreeStore) Load(context.Context) (map[string]model.Value, error) {
	if m.closed.Load() {
		return nil, preferr.ClosedConnection
	}

	values := map[string]model.Value{}

	m.store.Lock()
	for k, v, ok := m.store.Next(); ok; k, v, ok = m.store.Next() {
		key, isString := k.(string)
		value, isValue := v.(model.Value)
		if isString && isValue {
			values[key] = value
		}
	}
	m.store.Unlock()

	return values, nil
}

func (m *LockFreeStore) Apply(_ context.Context, set map[string]model.Value, removed []string) error {
	if m.closed.Load() {
		return preferr.ClosedConnection
	}

	for key, value := range set {
		m.store.Set(key, value)
	}

	for _, key := range removed {
		m.store.Del(key)
	}

	return nil
}

// Ping executes a ping to the backend
func (m *LockFreeStore) Ping(context.Context) error {
	if m.closed.Load() {
		return preferr.ClosedConnection
	}

	return nil
}

func (m *LockFreeStore) Close(context.Context) error {
	m.closed.Store(true)
	return nil
}
