package preferences

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/preferences/config"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/persistent"
	"github.com/TykTechnologies/preferences/preferr"
)

func unreachableRedis() *config.Config {
	return &config.Config{
		Backend:      model.RedisType,
		Domain:       model.DefaultDomain,
		SyncTimeout:  500 * time.Millisecond,
		RedisAddrs:   []string{"127.0.0.1:1"},
		RedisTimeout: 200 * time.Millisecond,
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{
		Backend:     model.BoltType,
		Domain:      "open-test",
		SyncTimeout: time.Second,
		BoltPath:    filepath.Join(t.TempDir(), "prefs.db"),
		BoltTimeout: time.Second,
	}

	store, err := Open(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, model.BoltType, store.BackendType())

	store.SetObject("user.name", "Ada")
	require.NoError(t, store.Close(ctx))

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	assert.Equal(t, "Ada", reopened.Object("user.name"))
}

func TestOpen_Errors(t *testing.T) {
	tcs := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{
			name:    "unknown backend",
			cfg:     &config.Config{Backend: "etcd", SyncTimeout: time.Second},
			wantErr: preferr.InvalidBackendType,
		},
		{
			name: "unreachable redis",
			cfg:  unreachableRedis(),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			store, err := Open(context.Background(), tc.cfg)
			require.Error(t, err)
			assert.Nil(t, store)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			}
		})
	}
}

func TestOpenOrFallback(t *testing.T) {
	tcs := []struct {
		name string
		load func() (*config.Config, error)
	}{
		{
			name: "config error",
			load: func() (*config.Config, error) { return nil, errors.New("bad environment") },
		},
		{
			name: "unreachable backend",
			load: func() (*config.Config, error) { return unreachableRedis(), nil },
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			store := openOrFallback(context.Background(), tc.load)
			require.NotNil(t, store)

			ps, ok := store.(*persistent.Store)
			require.True(t, ok)
			require.NotNil(t, ps)
			assert.Equal(t, model.LocalType, ps.BackendType())

			store.SetInteger("launches", 2)
			assert.Equal(t, 2, store.Integer("launches"))
			assert.NoError(t, store.Synchronize())
		})
	}
}

func TestLookup(t *testing.T) {
	_, ok := Lookup(context.Background())
	assert.False(t, ok)

	_, ok = Lookup(NewContext(context.Background(), nil))
	assert.False(t, ok)

	store := persistent.New(nil)
	got, ok := Lookup(NewContext(context.Background(), store))
	assert.True(t, ok)
	assert.Same(t, store, got)
}
