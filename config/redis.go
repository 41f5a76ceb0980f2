package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisPingTimeout = 2 * time.Second

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis dials the redis server named by REDIS_ADDR once per process.
// The portal keeps working without redis, so a failed ping leaves the client
// nil and returns the error for the caller to log.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		cfg := LoadConfig()
		if cfg.AppEnv == "test" {
			return
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if pingErr := rdb.Ping(ctx).Err(); pingErr != nil {
			_ = rdb.Close()
			err = fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, pingErr)
			return
		}

		redisClient = rdb
		log.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("redis connected")
	})
	return redisClient, err
}

// GetRedisClient returns the shared client, or nil when redis is unavailable.
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClientForTest swaps in a client, typically one from redismock.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest clears the client so ConnectRedis dials again.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
