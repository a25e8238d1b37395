package mock

import (
	"sync"
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferences"
)

// Operation names recorded in Calls.
const (
	OpGetObject  = "GET_OBJECT"
	OpSetObject  = "SET_OBJECT"
	OpGetBool    = "GET_BOOL"
	OpSetBool    = "SET_BOOL"
	OpGetInteger = "GET_INTEGER"
	OpSetInteger = "SET_INTEGER"
	OpRemove     = "REMOVE"
	OpSync       = "SYNCHRONIZE"
)

// Config configures the mock store.
type Config struct {
	// Seed pre-populates the in-memory store.
	Seed map[string]model.Value
}

// Call records an operation performed against the mock.
type Call struct {
	Op    string
	Key   string
	Value model.Value
}

// Store implements preferences.Store for tests.
type Store struct {
	mu        sync.RWMutex
	values    map[string]model.Value
	calls     []Call
	syncCalls int
}

var _ preferences.Store = (*Store)(nil)

// New creates a mock store holding a copy of cfg.Seed.
func New(cfg Config) *Store {
	values := make(map[string]model.Value, len(cfg.Seed))
	for k, v := range cfg.Seed {
		if v.IsValid() {
			values[k] = v
		}
	}

	return &Store{values: values}
}

// Install creates an empty mock, makes it the standard store and restores
// the previous store when t finishes.
func Install(t testing.TB) *Store {
	t.Helper()

	m := New(Config{})
	h := m.InstallAsStandard()
	t.Cleanup(h.Restore)

	return m
}

// InstallAsStandard makes m the standard store until the handle is restored.
func (m *Store) InstallAsStandard() *preferences.OverrideHandle {
	return preferences.Override(m)
}

func (m *Store) get(op, key string) model.Value {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: op, Key: key})

	return m.values[key]
}

func (m *Store) set(op, key string, v model.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: op, Key: key, Value: v})
	m.values[key] = v
}

// Object returns the object stored under key, or nil.
func (m *Store) Object(key string) interface{} {
	v, _ := m.get(OpGetObject, key).Object()
	return v
}

// SetObject stores v under key. A nil v removes the key.
func (m *Store) SetObject(key string, v interface{}) {
	if v == nil {
		m.remove(OpSetObject, key)
		return
	}

	m.set(OpSetObject, key, model.ObjectValue(v))
}

// Bool returns the boolean stored under key, or false.
func (m *Store) Bool(key string) bool {
	v, _ := m.get(OpGetBool, key).Bool()
	return v
}

func (m *Store) SetBool(key string, v bool) {
	m.set(OpSetBool, key, model.BoolValue(v))
}

// Integer returns the integer stored under key, or 0.
func (m *Store) Integer(key string) int {
	v, _ := m.get(OpGetInteger, key).Integer()
	return v
}

func (m *Store) SetInteger(key string, v int) {
	m.set(OpSetInteger, key, model.IntegerValue(v))
}

// Remove deletes key whatever its kind. Absent keys are ignored.
func (m *Store) Remove(key string) {
	m.remove(OpRemove, key)
}

func (m *Store) remove(op, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: op, Key: key})
	delete(m.values, key)
}

// Synchronize does nothing besides counting the call.
func (m *Store) Synchronize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpSync})
	m.syncCalls++

	return nil
}

// SyncCalls returns how many times Synchronize was called.
func (m *Store) SyncCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.syncCalls
}

// Calls returns a copy of the recorded operations, oldest first.
func (m *Store) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.calls)
}

// Keys returns the stored keys in sorted order.
func (m *Store) Keys() []string {
	m.mu.RLock()
	keys := maps.Keys(m.values)
	m.mu.RUnlock()

	slices.Sort(keys)

	return keys
}

// Snapshot returns a copy of the stored values.
func (m *Store) Snapshot() map[string]model.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.values)
}
