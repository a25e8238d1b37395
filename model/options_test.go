package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	tcs := []struct {
		name            string
		givenOption     Option
		expectedBaseCfg *BaseConfig
	}{
		{
			name: "WithRedisConfig",
			givenOption: WithRedisConfig(&RedisOptions{
				Username: "test",
				Password: "test",
				Host:     "test",
				Port:     1234,
				Timeout:  time.Second,
				Hosts: map[string]string{
					"test": "test",
				},
				Addrs:            []string{"test"},
				MasterName:       "test",
				SentinelPassword: "test",
				Database:         1234,
				MaxActive:        1234,
				EnableCluster:    true,
			}),
			expectedBaseCfg: &BaseConfig{
				RedisConfig: &RedisOptions{
					Username: "test",
					Password: "test",
					Host:     "test",
					Port:     1234,
					Timeout:  time.Second,
					Hosts: map[string]string{
						"test": "test",
					},
					Addrs:            []string{"test"},
					MasterName:       "test",
					SentinelPassword: "test",
					Database:         1234,
					MaxActive:        1234,
					EnableCluster:    true,
				},
			},
		},
		{
			name:        "WithBoltConfig",
			givenOption: WithBoltConfig(&BoltOptions{Path: "prefs.db", Timeout: time.Second}),
			expectedBaseCfg: &BaseConfig{
				BoltConfig: &BoltOptions{Path: "prefs.db", Timeout: time.Second},
			},
		},
		{
			name:        "WithMongoConfig",
			givenOption: WithMongoConfig(&MongoOptions{ConnectionString: "mongodb://localhost", Database: "prefs"}),
			expectedBaseCfg: &BaseConfig{
				MongoConfig: &MongoOptions{ConnectionString: "mongodb://localhost", Database: "prefs"},
			},
		},
		{
			name:        "WithIPFSConfig",
			givenOption: WithIPFSConfig(&IPFSOptions{}),
			expectedBaseCfg: &BaseConfig{
				IPFSConfig: &IPFSOptions{},
			},
		},
		{
			name:        "WithDomain",
			givenOption: WithDomain("com.example.app"),
			expectedBaseCfg: &BaseConfig{
				Domain: "com.example.app",
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			baseCfg := &BaseConfig{}
			tc.givenOption.Apply(baseCfg)
			assert.Equal(t, tc.expectedBaseCfg, baseCfg)
		})
	}
}

func TestNewBaseConfig(t *testing.T) {
	assert.Equal(t, DefaultDomain, NewBaseConfig().Domain)
	assert.Equal(t, DefaultDomain, NewBaseConfig(WithDomain("")).Domain)
	assert.Equal(t, "suite", NewBaseConfig(WithDomain("suite")).Domain)
}
