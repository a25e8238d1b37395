package ipfsds

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/TykTechnologies/preferences/internal/codec"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	dssync "github.com/ipfs/go-datastore/sync"
)

// segmentPrefix keeps escaped segments clear of "." and "..", which
// datastore keys would otherwise clean away.
const segmentPrefix = "="

// Datastore adapts any go-datastore Batching store.
type Datastore struct {
	ds        datastore.Batching
	namespace datastore.Key
	closed    atomic.Bool
}

func New(opts *model.IPFSOptions, domain string) *Datastore {
	if domain == "" {
		domain = model.DefaultDomain
	}

	var ds datastore.Batching
	if opts != nil && opts.Datastore != nil {
		ds = opts.Datastore
	} else {
		ds = dssync.MutexWrap(datastore.NewMapDatastore())
	}

	return &Datastore{
		ds:        ds,
		namespace: datastore.KeyWithNamespaces([]string{escape(domain)}),
	}
}

func escape(s string) string {
	return segmentPrefix + url.PathEscape(s)
}

func unescape(s string) (string, error) {
	return url.PathUnescape(strings.TrimPrefix(s, segmentPrefix))
}

func (d *Datastore) key(k string) datastore.Key {
	return d.namespace.ChildString(escape(k))
}

func (d *Datastore) Type() string {
	return model.IPFSType
}

func (d *Datastore) Load(ctx context.Context) (map[string]model.Value, error) {
	if d.closed.Load() {
		return nil, preferr.ClosedConnection
	}

	results, err := d.ds.Query(ctx, query.Query{Prefix: d.namespace.String()})
	if err != nil {
		return nil, err
	}

	entries, err := results.Rest()
	if err != nil {
		return nil, err
	}

	values := make(map[string]model.Value, len(entries))
	for _, entry := range entries {
		k := datastore.NewKey(entry.Key)
		if !k.Parent().Equal(d.namespace) {
			continue
		}

		name, err := unescape(k.BaseNamespace())
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", preferr.CorruptValue, entry.Key, err)
		}

		v, err := codec.Decode(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}

		values[name] = v
	}

	return values, nil
}

// Apply stages everything in one batch and commits it.
func (d *Datastore) Apply(ctx context.Context, set map[string]model.Value, removed []string) error {
	if d.closed.Load() {
		return preferr.ClosedConnection
	}

	if len(set) == 0 && len(removed) == 0 {
		return nil
	}

	batch, err := d.ds.Batch(ctx)
	if err != nil {
		return err
	}

	for key, value := range set {
		data, err := codec.Encode(value)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		if err := batch.Put(ctx, d.key(key), data); err != nil {
			return err
		}
	}

	for _, key := range removed {
		if err := batch.Delete(ctx, d.key(key)); err != nil {
			return err
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}

	return d.ds.Sync(ctx, d.namespace)
}

func (d *Datastore) Ping(context.Context) error {
	if d.closed.Load() {
		return preferr.ClosedConnection
	}

	return nil
}

func (d *Datastore) Close(context.Context) error {
	if d.closed.Swap(true) {
		return nil
	}

	return d.ds.Close()
}
