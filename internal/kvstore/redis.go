package kvstore

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"speakroots/internal/config"
)

const redisScanBatch = 200

// Redis stores entries in a redis database
type Redis struct {
	client *redis.Client
	opts   Options
}

// ConnectRedis dials redis and verifies the connection with PING
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.StorePingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("connect", cfg.Addr, err)
	}
	return client, nil
}

// NewRedis wraps a connected client. The store owns client and closes it on Close.
func NewRedis(client *redis.Client, opts Options) *Redis {
	return &Redis{client: client, opts: opts}
}

// Get implements Store
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, unavailable("get", key, err)
	}
	return data, nil
}

// Set implements Store
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.opts.TTL).Err(); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

// Delete implements Store
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return unavailable("delete", key, err)
	}
	return nil
}

// DeletePrefix implements Store
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", redisScanBatch).Iterator()

	removed := 0
	batch := make([]string, 0, redisScanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == redisScanBatch {
			if err := flush(); err != nil {
				return removed, unavailable("delete", prefix, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, unavailable("scan", prefix, err)
	}
	if err := flush(); err != nil {
		return removed, unavailable("delete", prefix, err)
	}
	return removed, nil
}

// Close implements Store
func (r *Redis) Close() error {
	return r.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
