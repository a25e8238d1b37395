package model

import (
	"time"

	"github.com/ipfs/go-datastore"
)

// BaseConfig is the union of every backend configuration.
type BaseConfig struct {
	Domain      string
	RedisConfig *RedisOptions
	BoltConfig  *BoltOptions
	MongoConfig *MongoOptions
	IPFSConfig  *IPFSOptions
}

type Option interface {
	Apply(*BaseConfig)
}

type opts struct {
	fn func(*BaseConfig)
}

func (o *opts) Apply(bcfg *BaseConfig) {
	o.fn(bcfg)
}

// NewBaseConfig applies options over the defaults.
func NewBaseConfig(options ...Option) *BaseConfig {
	bcfg := &BaseConfig{Domain: DefaultDomain}
	for _, opt := range options {
		opt.Apply(bcfg)
	}

	if bcfg.Domain == "" {
		bcfg.Domain = DefaultDomain
	}

	return bcfg
}

// WithDomain selects the preferences suite.
func WithDomain(domain string) Option {
	return &opts{
		fn: func(bcfg *BaseConfig) {
			bcfg.Domain = domain
		},
	}
}

// WithRedisConfig is a helper function to create a ConnectionOption for Redis.
func WithRedisConfig(config *RedisOptions) Option {
	return &opts{
		fn: func(bcfg *BaseConfig) {
			bcfg.RedisConfig = config
		},
	}
}

func WithBoltConfig(config *BoltOptions) Option {
	return &opts{
		fn: func(bcfg *BaseConfig) {
			bcfg.BoltConfig = config
		},
	}
}

func WithMongoConfig(config *MongoOptions) Option {
	return &opts{
		fn: func(bcfg *BaseConfig) {
			bcfg.MongoConfig = config
		},
	}
}

func WithIPFSConfig(config *IPFSOptions) Option {
	return &opts{
		fn: func(bcfg *BaseConfig) {
			bcfg.IPFSConfig = config
		},
	}
}

// RedisOptions contains options specific to Redis storage.
type RedisOptions struct {
	// Connection username
	Username string `json:"username"`
	// Connection password
	Password string `json:"password"`
	// Connection host. For example: "localhost"
	Host string `json:"host"`
	// Connection port. For example: 6379
	Port int `json:"port"`
	// Set a custom timeout for Redis network operations. Default value 5 seconds.
	Timeout time.Duration `json:"timeout"`
	// Enable SSL/TLS connection to Redis.
	UseSSL bool `json:"use_ssl"`
	// Disable TLS verification
	SSLInsecureSkipVerify bool `json:"ssl_insecure_skip_verify"`

	Hosts map[string]string `json:"hosts"` // Deprecated: Addrs instead.
	// If you have multi-node setup, you should use this field instead. For example: ["host1:port1", "host2:port2"].
	Addrs []string `json:"addrs"`
	// Redis sentinel master name
	MasterName string `json:"master_name"`
	// Redis sentinel password
	SentinelPassword string `json:"sentinel_password"`
	// Redis database
	Database int `json:"database"`
	// Set the number of maximum connections in the Redis connection pool, which defaults to 500
	MaxActive int `json:"optimisation_max_active"`
	// Enable Redis Cluster support
	EnableCluster bool `json:"enable_cluster"`
}

// BoltOptions configures the single-file backend.
type BoltOptions struct {
	// Path of the database file. It is created if missing.
	Path string `json:"path"`
	// How long to wait for the file lock. Zero waits forever.
	Timeout time.Duration `json:"timeout"`
}

// MongoOptions configures the MongoDB backend.
type MongoOptions struct {
	ConnectionString string        `json:"connection_string"`
	Database         string        `json:"database"`
	Collection       string        `json:"collection"`
	ConnectTimeout   time.Duration `json:"connect_timeout"`
}

// IPFSOptions wraps an existing datastore. A nil Datastore means an
// in-memory one.
type IPFSOptions struct {
	Datastore datastore.Batching
}
