package client

import (
	"testing"
	"time"

	"orgchart/config"

	"github.com/stretchr/testify/assert"
)

func TestRedisOptions(t *testing.T) {
	conf := &config.Configuration{
		App:   config.App{Name: "orgchart"},
		Redis: config.Redis{Host: "redis.internal", Port: 6380, Password: "secret", DB: 2},
	}
	opts := redisOptions(conf)
	assert.Equal(t, "redis.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "orgchart", opts.ClientName)
	assert.Equal(t, 10*time.Second, opts.ReadTimeout)
}
