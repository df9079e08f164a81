package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisCache guarda los resúmenes bajo "<prefix>:<generación>:<key>". Invalidate
// incrementa la generación, con lo que las claves anteriores quedan huérfanas y expiran por TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(addr, password string, db int, prefix string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) generationKey() string { return c.prefix + ":gen" }

func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	val, err := c.client.Get(ctx, c.generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: leer generación: %w", err)
	}
	return strconv.ParseInt(val, 10, 64)
}

func (c *RedisCache) key(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, gen, key)
}

func (c *RedisCache) Get(ctx context.Context, gen int64, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set no escribe si la generación avanzó desde gen. Si avanza entre la comprobación y
// la escritura, la clave queda bajo la generación vieja y nadie la vuelve a leer.
func (c *RedisCache) Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error {
	current, err := c.Generation(ctx)
	if err != nil {
		return err
	}
	if current != gen {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(gen, key), payload, ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}
