package config

import (
	"testing"
	"time"

	"github.com/TykTechnologies/preferences/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, model.LocalType, cfg.Backend)
	assert.Equal(t, model.DefaultDomain, cfg.Domain)
	assert.Equal(t, 5*time.Second, cfg.SyncTimeout)
	assert.Equal(t, []string{"localhost:6379"}, cfg.RedisAddrs)
	assert.Equal(t, "preferences.db", cfg.BoltPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PREFS_BACKEND", "redis")
	t.Setenv("PREFS_DOMAIN", "com.example.app")
	t.Setenv("PREFS_REDIS_ADDRS", "10.0.0.1:6379,10.0.0.2:6379")
	t.Setenv("PREFS_REDIS_DB", "3")
	t.Setenv("PREFS_SYNC_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "com.example.app", cfg.Domain)
	assert.Equal(t, []string{"10.0.0.1:6379", "10.0.0.2:6379"}, cfg.RedisAddrs)
	assert.Equal(t, 3, cfg.RedisDatabase)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncTimeout)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PREFS_SYNC_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	tcs := []struct {
		name   string
		cfg    Config
		expect model.BaseConfig
	}{
		{
			name:   "local",
			cfg:    Config{Backend: model.LocalType, Domain: "d"},
			expect: model.BaseConfig{Domain: "d"},
		},
		{
			name: "redis",
			cfg:  Config{Backend: model.RedisType, Domain: "d", RedisAddrs: []string{"h:1"}, RedisTimeout: time.Second},
			expect: model.BaseConfig{
				Domain:      "d",
				RedisConfig: &model.RedisOptions{Addrs: []string{"h:1"}, Timeout: time.Second},
			},
		},
		{
			name: "bolt",
			cfg:  Config{Backend: model.BoltType, Domain: "d", BoltPath: "p.db"},
			expect: model.BaseConfig{
				Domain:     "d",
				BoltConfig: &model.BoltOptions{Path: "p.db"},
			},
		},
		{
			name: "mongo",
			cfg:  Config{Backend: model.MongoType, Domain: "d", MongoURI: "mongodb://h", MongoDatabase: "db"},
			expect: model.BaseConfig{
				Domain:      "d",
				MongoConfig: &model.MongoOptions{ConnectionString: "mongodb://h", Database: "db"},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := model.NewBaseConfig(tc.cfg.Options()...)
			assert.Equal(t, &tc.expect, got)
		})
	}
}
