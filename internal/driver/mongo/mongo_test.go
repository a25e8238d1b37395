package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/TykTechnologies/preferences/model"
	"github.com/TykTechnologies/preferences/preferr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultTestConnectionString = "mongodb://localhost:27017/preferences_test"

func testConnectionString() string {
	if cs := os.Getenv("PREFS_TEST_MONGO_URI"); cs != "" {
		return cs
	}

	return defaultTestConnectionString
}

func testDriver(t *testing.T, domain string) *mongoDriver {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	d, err := NewMongoDriver(ctx, &model.MongoOptions{
		ConnectionString: testConnectionString(),
		ConnectTimeout:   time.Second,
	}, domain)
	require.NoError(t, err)

	if err := d.Ping(ctx); err != nil {
		d.Close(context.Background())
		t.Skipf("mongo not reachable: %v", err)
	}

	t.Cleanup(func() {
		d.collection.DeleteMany(context.Background(), bson.M{"domain": d.domain})
		d.Close(context.Background())
	})

	return d
}

func TestNewMongoDriver(t *testing.T) {
	tcs := []struct {
		name    string
		opts    *model.MongoOptions
		wantErr error
	}{
		{
			name: "nil options",
		},
		{
			name: "empty connection string",
			opts: &model.MongoOptions{},
		},
		{
			name:    "invalid connection string",
			opts:    &model.MongoOptions{ConnectionString: "invalid://host"},
			wantErr: preferr.InvalidConfiguration,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewMongoDriver(context.Background(), tc.opts, "")
			assert.Nil(t, d)
			assert.Error(t, err)

			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr))
			}
		})
	}
}

func TestMongoDriver_ApplyLoad(t *testing.T) {
	ctx := context.Background()
	d := testDriver(t, "mongo-test")
	assert.Equal(t, model.MongoType, d.Type())

	err := d.Apply(ctx, map[string]model.Value{
		"user.name": model.ObjectValue("Ada"),
		"onboarded": model.BoolValue(true),
		"launches":  model.IntegerValue(3),
	}, nil)
	require.NoError(t, err)

	got, err := d.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.True(t, got["user.name"].Equal(model.ObjectValue("Ada")))

	require.NoError(t, d.Apply(ctx, map[string]model.Value{"launches": model.IntegerValue(4)}, []string{"user.name"}))

	got, err = d.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, got["launches"].Equal(model.IntegerValue(4)))
}

func TestMongoDriver_ApplyNothing(t *testing.T) {
	d := testDriver(t, "mongo-empty")
	assert.NoError(t, d.Apply(context.Background(), nil, nil))
}
