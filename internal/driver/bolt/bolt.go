package bolt

import (
	"context"
	"fmt"

	"github.com/TykTechnologies/preferences/internal/codec"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"go.etcd.io/bbolt"
)

// Bolt stores each domain in its own bucket of a single bbolt file.
type Bolt struct {
	db     *bbolt.DB
	bucket []byte
}

func Open(opts *model.BoltOptions, domain string) (*Bolt, error) {
	if opts == nil || opts.Path == "" {
		return nil, fmt.Errorf("%w: missing bolt path", preferr.InvalidConfiguration)
	}

	if domain == "" {
		domain = model.DefaultDomain
	}

	db, err := bbolt.Open(opts.Path, 0o600, &bbolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, err
	}

	b := &Bolt{db: db, bucket: []byte(domain)}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

func (b *Bolt) Type() string {
	return model.BoltType
}

func (b *Bolt) Load(context.Context) (map[string]model.Value, error) {
	values := map[string]model.Value{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			value, err := codec.Decode(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}

			values[string(k)] = value
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// Apply commits set and removed in one read-write transaction.
func (b *Bolt) Apply(_ context.Context, set map[string]model.Value, removed []string) error {
	if len(set) == 0 && len(removed) == 0 {
		return nil
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}

		for key, value := range set {
			data, err := codec.Encode(value)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}

			if err := bucket.Put([]byte(key), data); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}

		for _, key := range removed {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}

		return nil
	})
}

// Ping fails once the file has been closed.
func (b *Bolt) Ping(context.Context) error {
	err := b.db.View(func(*bbolt.Tx) error { return nil })
	if err == bbolt.ErrDatabaseNotOpen {
		return preferr.ClosedConnection
	}

	return err
}

func (b *Bolt) Close(context.Context) error {
	return b.db.Close()
}
