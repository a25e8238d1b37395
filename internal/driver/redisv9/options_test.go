package redisv9

import (
	"testing"
	"time"

	"github.com/TykTechnologies/preferences/model"
	"github.com/stretchr/testify/assert"
)

func TestAddrs(t *testing.T) {
	tcs := []struct {
		name string
		opts model.RedisOptions
		want []string
	}{
		{
			name: "addrs",
			opts: model.RedisOptions{Addrs: []string{"127.0.0.1:6379", "127.0.0.2:6379"}},
			want: []string{"127.0.0.1:6379", "127.0.0.2:6379"},
		},
		{
			name: "hosts are sorted",
			opts: model.RedisOptions{Hosts: map[string]string{"127.0.0.2": "6380", "127.0.0.1": "6379"}},
			want: []string{"127.0.0.1:6379", "127.0.0.2:6380"},
		},
		{
			name: "host and port",
			opts: model.RedisOptions{Host: "127.0.0.1", Port: 6379},
			want: []string{"127.0.0.1:6379"},
		},
		{
			name: "ipv6 host",
			opts: model.RedisOptions{Host: "::1", Port: 6379},
			want: []string{"[::1]:6379"},
		},
		{
			name: "port only",
			opts: model.RedisOptions{Port: 6379},
			want: []string{":6379"},
		},
		{
			name: "addrs win over hosts",
			opts: model.RedisOptions{Addrs: []string{"127.0.0.1:6379"}, Hosts: map[string]string{"127.0.0.2": "6380"}},
			want: []string{"127.0.0.1:6379"},
		},
		{
			name: "hosts win over host and port",
			opts: model.RedisOptions{Hosts: map[string]string{"127.0.0.1": "6379"}, Host: "127.0.0.2", Port: 6380},
			want: []string{"127.0.0.1:6379"},
		},
		{
			name: "empty",
			want: nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, addrs(&tc.opts))
		})
	}
}

func TestUniversalOptions(t *testing.T) {
	uopts := universalOptions(&model.RedisOptions{Addrs: []string{"h:1"}})
	assert.Equal(t, defaultTimeout, uopts.DialTimeout)
	assert.Equal(t, defaultPoolSize, uopts.PoolSize)
	assert.Nil(t, uopts.TLSConfig)

	uopts = universalOptions(&model.RedisOptions{
		Timeout:               time.Second,
		MaxActive:             10,
		UseSSL:                true,
		SSLInsecureSkipVerify: true,
	})
	assert.Equal(t, time.Second, uopts.ReadTimeout)
	assert.Equal(t, 240*time.Second, uopts.ConnMaxIdleTime)
	assert.Equal(t, 10, uopts.PoolSize)
	if assert.NotNil(t, uopts.TLSConfig) {
		assert.True(t, uopts.TLSConfig.InsecureSkipVerify)
	}
}
