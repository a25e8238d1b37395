package config

import (
	"fmt"
	"time"

	"github.com/TykTechnologies/preferences/model"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Backend      string        `env:"PREFS_BACKEND" envDefault:"local"`
	Domain       string        `env:"PREFS_DOMAIN" envDefault:"standard"`
	SyncTimeout  time.Duration `env:"PREFS_SYNC_TIMEOUT" envDefault:"5s"`
	LogVerbosity int           `env:"PREFS_LOG_VERBOSITY" envDefault:"0"`

	// Redis
	RedisAddrs         []string      `env:"PREFS_REDIS_ADDRS" envSeparator:"," envDefault:"localhost:6379"`
	RedisUsername      string        `env:"PREFS_REDIS_USERNAME"`
	RedisPassword      string        `env:"PREFS_REDIS_PASSWORD"`
	RedisDatabase      int           `env:"PREFS_REDIS_DB" envDefault:"0"`
	RedisTimeout       time.Duration `env:"PREFS_REDIS_TIMEOUT" envDefault:"5s"`
	RedisMasterName    string        `env:"PREFS_REDIS_MASTER_NAME"`
	RedisEnableCluster bool          `env:"PREFS_REDIS_CLUSTER" envDefault:"false"`
	RedisUseSSL        bool          `env:"PREFS_REDIS_SSL" envDefault:"false"`

	// Bolt
	BoltPath    string        `env:"PREFS_BOLT_PATH" envDefault:"preferences.db"`
	BoltTimeout time.Duration `env:"PREFS_BOLT_TIMEOUT" envDefault:"1s"`

	// Mongo
	MongoURI        string        `env:"PREFS_MONGO_URI"`
	MongoDatabase   string        `env:"PREFS_MONGO_DATABASE" envDefault:"preferences"`
	MongoCollection string        `env:"PREFS_MONGO_COLLECTION" envDefault:"preferences"`
	MongoTimeout    time.Duration `env:"PREFS_MONGO_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// Options converts the configuration for connector.NewConnector. Only the
// selected backend's options are included.
func (c *Config) Options() []model.Option {
	options := []model.Option{model.WithDomain(c.Domain)}

	switch c.Backend {
	case model.RedisType:
		options = append(options, model.WithRedisConfig(&model.RedisOptions{
			Addrs:         c.RedisAddrs,
			Username:      c.RedisUsername,
			Password:      c.RedisPassword,
			Database:      c.RedisDatabase,
			Timeout:       c.RedisTimeout,
			MasterName:    c.RedisMasterName,
			EnableCluster: c.RedisEnableCluster,
			UseSSL:        c.RedisUseSSL,
		}))
	case model.BoltType:
		options = append(options, model.WithBoltConfig(&model.BoltOptions{
			Path:    c.BoltPath,
			Timeout: c.BoltTimeout,
		}))
	case model.MongoType:
		options = append(options, model.WithMongoConfig(&model.MongoOptions{
			ConnectionString: c.MongoURI,
			Database:         c.MongoDatabase,
			Collection:       c.MongoCollection,
			ConnectTimeout:   c.MongoTimeout,
		}))
	}

	return options
}
