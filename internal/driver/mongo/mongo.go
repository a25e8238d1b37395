package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TykTechnologies/preferences/internal/codec"
	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	defaultDatabase   = "preferences"
	defaultCollection = "preferences"
)

// document is one preference; _id is domain + "/" + key.
type document struct {
	ID     string `bson:"_id"`
	Domain string `bson:"domain"`
	Key    string `bson:"key"`
	Value  string `bson:"value"`
}

type mongoDriver struct {
	client     *mongo.Client
	collection *mongo.Collection
	domain     string
}

// NewMongoDriver returns a driver connected to the database.
func NewMongoDriver(ctx context.Context, opts *model.MongoOptions, domain string) (*mongoDriver, error) {
	if opts == nil || opts.ConnectionString == "" {
		return nil, errors.New("can't connect without connection string")
	}

	cs, err := connstring.ParseAndValidate(opts.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string", preferr.InvalidConfiguration)
	}

	if domain == "" {
		domain = model.DefaultDomain
	}

	database := opts.Database
	if database == "" {
		database = cs.Database
	}
	if database == "" {
		database = defaultDatabase
	}

	collection := opts.Collection
	if collection == "" {
		collection = defaultCollection
	}

	timeout := 10 * time.Second
	if opts.ConnectTimeout > 0 {
		timeout = opts.ConnectTimeout
	}

	connOpts := options.Client().
		ApplyURI(opts.ConnectionString).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, connOpts)
	if err != nil {
		return nil, err
	}

	return &mongoDriver{
		client:     client,
		collection: client.Database(database).Collection(collection),
		domain:     domain,
	}, nil
}

func (d *mongoDriver) id(key string) string {
	return d.domain + "/" + key
}

func (d *mongoDriver) Type() string {
	return model.MongoType
}

func (d *mongoDriver) Load(ctx context.Context) (map[string]model.Value, error) {
	cursor, err := d.collection.Find(ctx, bson.M{"domain": d.domain})
	if err != nil {
		return nil, err
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	values := make(map[string]model.Value, len(docs))
	for _, doc := range docs {
		v, err := codec.Decode([]byte(doc.Value))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", doc.Key, err)
		}

		values[doc.Key] = v
	}

	return values, nil
}

// Apply sends all upserts and deletes as one unordered bulk write.
func (d *mongoDriver) Apply(ctx context.Context, set map[string]model.Value, removed []string) error {
	models := make([]mongo.WriteModel, 0, len(set)+len(removed))

	for key, value := range set {
		data, err := codec.Encode(value)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		doc := document{ID: d.id(key), Domain: d.domain, Key: key, Value: string(data)}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	for _, key := range removed {
		models = append(models, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": d.id(key)}))
	}

	if len(models) == 0 {
		return nil
	}

	_, err := d.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))

	return err
}

func (d *mongoDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *mongoDriver) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
