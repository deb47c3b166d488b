package client

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"orgchart/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 名冊快照用的 Redis 連線；啟動時必須可連線
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	redisClient := &RedisClient{logger: logger, client: redis.NewClient(redisOptions(config))}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		logger.Error("failed to connect to Redis", zap.String("addr", redisClient.client.Options().Addr), zap.Error(err))
		_ = redisClient.client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Connected to Redis", zap.String("addr", redisClient.client.Options().Addr), zap.Int("db", config.Redis.DB))

	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}
	return redisClient, cleanup, nil
}

// 快照一次讀寫整份名冊，讀寫逾時放寬
func redisOptions(config *config.Configuration) *redis.Options {
	return &redis.Options{
		Addr:         net.JoinHostPort(config.Redis.Host, strconv.Itoa(config.Redis.Port)),
		Password:     config.Redis.Password,
		DB:           config.Redis.DB,
		ClientName:   config.App.Name,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func (redisClient *RedisClient) Ping(ctx context.Context) error {
	return redisClient.client.Ping(ctx).Err()
}

// Close 關閉 Redis 連線
func (redisClient *RedisClient) Close() error {
	return redisClient.client.Close()
}

// Client 回傳 Redis 連線
func (redisClient *RedisClient) Client() *redis.Client {
	return redisClient.client
}
