package lib

import (
	"context"
	"fmt"
	"log"
	"time"
	"tourbook/src/config"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns the shared client, or nil when REDIS_HOST is unset
// or invalid.
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := config.RedisURL()
	if redisHost == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

const eventDedupeTTL = 24 * time.Hour

// ClaimEvent marks a gateway event id as seen. It returns false when the
// event was already claimed. Without a redis client every event is new.
func ClaimEvent(ctx context.Context, rdb *redis.Client, eventID string) bool {
	if rdb == nil {
		return true
	}
	ok, err := rdb.SetNX(ctx, fmt.Sprintf("stripe:event:%s", eventID), 1, eventDedupeTTL).Result()
	if err != nil {
		log.Printf("[redis] Error claiming event %s: %s\n", eventID, err.Error())
		return true
	}
	return ok
}

// ReleaseEvent drops a claim so the gateway's retry of the event is
// processed again.
func ReleaseEvent(ctx context.Context, rdb *redis.Client, eventID string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, fmt.Sprintf("stripe:event:%s", eventID)).Err(); err != nil {
		log.Printf("[redis] Error releasing event %s: %s\n", eventID, err.Error())
	}
}
