package connector

import (
	"context"

	"github.com/TykTechnologies/preferences/internal/driver/bolt"
	"github.com/TykTechnologies/preferences/internal/driver/ipfsds"
	"github.com/TykTechnologies/preferences/internal/driver/local"
	"github.com/TykTechnologies/preferences/internal/driver/mongo"
	"github.com/TykTechnologies/preferences/internal/driver/redisv9"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
)

var (
	WithDomain      = model.WithDomain
	WithRedisConfig = model.WithRedisConfig
	WithBoltConfig  = model.WithBoltConfig
	WithMongoConfig = model.WithMongoConfig
	WithIPFSConfig  = model.WithIPFSConfig
)

var (
	_ model.Backend = (*local.LockFreeStore)(nil)
	_ model.Backend = (*redisv9.RedisV9)(nil)
	_ model.Backend = (*bolt.Bolt)(nil)
	_ model.Backend = (*ipfsds.Datastore)(nil)
)

// NewConnector returns a new backend based on the type. You have to specify the backend configuration as an Option.
func NewConnector(ctx context.Context, connType string, options ...model.Option) (model.Backend, error) {
	cfg := model.NewBaseConfig(options...)

	switch connType {
	case model.LocalType:
		return local.NewLockFreeStore(), nil
	case model.RedisType:
		r, err := redisv9.NewRedisV9(cfg.RedisConfig, cfg.Domain)
		if err != nil {
			return nil, err
		}

		return r, nil
	case model.BoltType:
		b, err := bolt.Open(cfg.BoltConfig, cfg.Domain)
		if err != nil {
			return nil, err
		}

		return b, nil
	case model.MongoType:
		m, err := mongo.NewMongoDriver(ctx, cfg.MongoConfig, cfg.Domain)
		if err != nil {
			return nil, err
		}

		return m, nil
	case model.IPFSType:
		return ipfsds.New(cfg.IPFSConfig, cfg.Domain), nil

	default:
		return nil, preferr.InvalidBackendType
	}
}

