package redisv9

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/TykTechnologies/preferences/internal/codec"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"
)

const keyPrefix = "prefs:"

// RedisV9 keeps one hash per domain.
type RedisV9 struct {
	client redis.UniversalClient
	key    string
}

const (
	defaultPoolSize = 500
	defaultTimeout  = 5 * time.Second
)

func NewRedisV9(opts *model.RedisOptions, domain string) (*RedisV9, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: missing redis options", preferr.InvalidConfiguration)
	}

	if domain == "" {
		domain = model.DefaultDomain
	}

	uopts := universalOptions(opts)

	var client redis.UniversalClient
	switch {
	case opts.MasterName != "":
		client = redis.NewFailoverClient(uopts.Failover())
	case opts.EnableCluster:
		client = redis.NewClusterClient(uopts.Cluster())
	default:
		client = redis.NewClient(uopts.Simple())
	}

	return &RedisV9{client: client, key: keyPrefix + domain}, nil
}

func universalOptions(opts *model.RedisOptions) *redis.UniversalOptions {
	timeout := defaultTimeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	// Pool size is per cluster node.
	poolSize := defaultPoolSize
	if opts.MaxActive > 0 {
		poolSize = opts.MaxActive
	}

	uopts := &redis.UniversalOptions{
		Addrs:            addrs(opts),
		MasterName:       opts.MasterName,
		SentinelPassword: opts.SentinelPassword,
		Username:         opts.Username,
		Password:         opts.Password,
		DB:               opts.Database,
		DialTimeout:      timeout,
		ReadTimeout:      timeout,
		WriteTimeout:     timeout,
		ConnMaxIdleTime:  240 * timeout,
		PoolSize:         poolSize,
	}

	if opts.UseSSL {
		uopts.TLSConfig = &tls.Config{InsecureSkipVerify: opts.SSLInsecureSkipVerify}
	}

	return uopts
}

// addrs picks the first non-empty source: Addrs, then Hosts (sorted), then
// Host and Port.
func addrs(opts *model.RedisOptions) []string {
	if len(opts.Addrs) > 0 {
		return opts.Addrs
	}

	if len(opts.Hosts) > 0 {
		out := make([]string, 0, len(opts.Hosts))
		for host, port := range opts.Hosts {
			out = append(out, net.JoinHostPort(host, port))
		}
		slices.Sort(out)

		return out
	}

	if opts.Port != 0 {
		return []string{net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))}
	}

	return nil
}

// Type returns the backend type
func (r *RedisV9) Type() string {
	return model.RedisType
}

// Load reads the whole domain hash
func (r *RedisV9) Load(ctx context.Context) (map[string]model.Value, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}

	values := make(map[string]model.Value, len(fields))
	for field, raw := range fields {
		v, err := codec.Decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}

		values[field] = v
	}

	return values, nil
}

// Apply writes and deletes fields in a single MULTI/EXEC
func (r *RedisV9) Apply(ctx context.Context, set map[string]model.Value, removed []string) error {
	if len(set) == 0 && len(removed) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(set))
	for key, value := range set {
		data, err := codec.Encode(value)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		fields[key] = string(data)
	}

	pipe := r.client.TxPipeline()
	if len(fields) > 0 {
		pipe.HSet(ctx, r.key, fields)
	}

	if len(removed) > 0 {
		pipe.HDel(ctx, r.key, removed...)
	}

	_, err := pipe.Exec(ctx)

	return err
}

// Ping executes a ping to the backend
func (r *RedisV9) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client
func (r *RedisV9) Close(context.Context) error {
	return r.client.Close()
}
