package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nao1215/salesqueen/internal/model"
)

// redisPingTimeout bounds the connectivity check made by NewRedis.
const redisPingTimeout = 5 * time.Second

// Redis stores the document under model.ProjectKey with no expiry.
type Redis struct {
	client *redis.Client
	key    string
}

var _ Backend = (*Redis)(nil)

// NewRedis connects to redisURL and verifies the server is reachable.
func NewRedis(redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisWithClient(client), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client, key: model.ProjectKey}
}

// Save implements Backend.
func (r *Redis) Save(ctx context.Context, p *model.Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load implements Backend.
func (r *Redis) Load(ctx context.Context) (*model.Project, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return Decode(data)
}

// Clear implements Backend.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear project: %w", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Backend.
func (r *Redis) Close() error {
	return r.client.Close()
}
