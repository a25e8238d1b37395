/*
Package mock provides an in-memory implementation of preferences.Store for tests.

The mock holds typed values in a map, never touches disk and can be installed
as the process-wide store for the duration of a test, so code that reads
preferences.Standard() sees the mock instead of the real preferences.

# Basic Usage

Install a fresh mock for the current test. The previous store is put back by
t.Cleanup, whether the test passes, fails or panics:

	import (
		"testing"

		"github.com/TykTechnologies/preferences/preferences/mock"
	)

	func TestGreeting(t *testing.T) {
		m := mock.Install(t)
		m.SetObject("user.name", "Ada")
		// code under test reads preferences.Standard().Object("user.name")
	}

# Manual Installation

When the mock has to outlive a single test, install it yourself and keep the
handle:

	m := mock.New(mock.Config{Seed: map[string]model.Value{
		"feature.enabled": model.BoolValue(true),
	}})
	h := m.InstallAsStandard()
	defer h.Restore()

Restore may be called more than once; only the first call has an effect.

# Inspecting Calls

Every operation is recorded:

	for _, c := range m.Calls() {
		// c.Op, c.Key, c.Value
	}

SyncCalls reports how many times Synchronize was called.
*/
package mock
