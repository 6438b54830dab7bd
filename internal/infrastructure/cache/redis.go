package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	repo "github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// Client wraps go-redis for the application
type Client struct {
	rdb *redis.Client
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// WrapRedis wraps an existing go-redis client
func WrapRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Raw returns the underlying redis.Client
func (c *Client) Raw() *redis.Client { return c.rdb }

// Close closes the connection pool
func (c *Client) Close() error { return c.rdb.Close() }

// unlockScript deletes the key only when it still holds our token
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a per-key lock built on SET NX PX
type RedisLocker struct {
	client *Client
	token  string
}

var _ repo.Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker whose locks are owned by this process
func NewRedisLocker(client *Client) *RedisLocker {
	return &RedisLocker{client: client, token: uuid.NewString()}
}

// TryLock acquires key for ttl
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.rdb.SetNX(ctx, key, l.token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// Unlock releases key if this process still owns it
func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	if err := unlockScript.Run(ctx, l.client.rdb, []string{key}, l.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}
