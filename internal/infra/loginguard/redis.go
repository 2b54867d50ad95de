package loginguard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// registerFailureScript атомарно увеличивает счётчик неудачных попыток.
// При достижении порога ставит ключ блокировки на BlockFor и сбрасывает счётчик.
// KEYS[1] счётчик, KEYS[2] блокировка; ARGV[1] порог, ARGV[2] TTL в мс.
var registerFailureScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
if current >= tonumber(ARGV[1]) then
  redis.call("SET", KEYS[2], current, "PX", ARGV[2])
  redis.call("DEL", KEYS[1])
end
return current
`)

// RedisGuard учёт неудачных входов в Redis, общий для всех инстансов сервиса
type RedisGuard struct {
	rdb    redis.UniversalClient
	policy Policy
	prefix string
}

// NewRedisGuard создает guard поверх Redis
func NewRedisGuard(rdb redis.UniversalClient, policy Policy, prefix string) *RedisGuard {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "login"
	}
	return &RedisGuard{rdb: rdb, policy: normalize(policy), prefix: prefix}
}

func (g *RedisGuard) failKey(key string) string { return g.prefix + ":fail:" + key }
func (g *RedisGuard) blockKey(key string) string { return g.prefix + ":block:" + key }

// Check возвращает текущее состояние ключа
func (g *RedisGuard) Check(ctx context.Context, key string) (Status, error) {
	blockedFor, err := g.rdb.PTTL(ctx, g.blockKey(key)).Result()
	if err != nil {
		return Status{}, fmt.Errorf("%w: Check - pttl: %w", ErrStore, err)
	}
	if blockedFor > 0 {
		return g.policy.status(g.policy.MaxAttempts, blockedFor), nil
	}

	attempts, err := g.rdb.Get(ctx, g.failKey(key)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Status{}, fmt.Errorf("%w: Check - get: %w", ErrStore, err)
	}

	return g.policy.status(attempts, 0), nil
}

// RegisterFailure учитывает неудачную попытку входа
func (g *RedisGuard) RegisterFailure(ctx context.Context, key string) (Status, error) {
	ttl := g.policy.BlockFor.Milliseconds()

	attempts, err := registerFailureScript.Run(ctx, g.rdb,
		[]string{g.failKey(key), g.blockKey(key)},
		g.policy.MaxAttempts, ttl,
	).Int()
	if err != nil {
		return Status{}, fmt.Errorf("%w: RegisterFailure - script: %w", ErrStore, err)
	}

	if attempts >= g.policy.MaxAttempts {
		return g.policy.status(attempts, g.policy.BlockFor), nil
	}
	return g.policy.status(attempts, 0), nil
}

// Reset сбрасывает счётчик и блокировку после успешного входа
func (g *RedisGuard) Reset(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, g.failKey(key), g.blockKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: Reset - del: %w", ErrStore, err)
	}
	return nil
}

func normalize(p Policy) Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	if p.BlockFor <= 0 {
		p.BlockFor = 30 * time.Minute
	}
	return p
}
