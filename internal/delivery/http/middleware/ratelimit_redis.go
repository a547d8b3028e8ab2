package middleware

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"zenpeople/internal/infrastructure/redis"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter counts requests in Redis so limits hold across replicas.
// Redis failures fail open.
type RedisLimiter struct {
	client *goredis.Client
	script *goredis.Script
}

func NewRedisLimiter(rc *redis.RedisClient) *RedisLimiter {
	if rc == nil || rc.Client == nil {
		return nil
	}
	return &RedisLimiter{
		client: rc.Client,
		script: goredis.NewScript(rateLimitScript),
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
