package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anirbanjana883/question-traker/models"
)

// RedisGateway keeps the serialized document under a single key.
type RedisGateway struct {
	client *redis.Client
	key    string
}

// NewRedisGateway connects to redisURL and verifies the connection.
func NewRedisGateway(ctx context.Context, redisURL, key string) (*RedisGateway, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisGatewayWithClient(client, key), nil
}

// NewRedisGatewayWithClient creates a gateway from an existing client
func NewRedisGatewayWithClient(client *redis.Client, key string) *RedisGateway {
	return &RedisGateway{client: client, key: key}
}

func (g *RedisGateway) Load(ctx context.Context) (*models.Document, error) {
	data, err := g.client.Get(ctx, g.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", g.key, err)
	}
	return decodeDocument(data)
}

// Save replaces the value with a single SET, which redis applies atomically.
func (g *RedisGateway) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := g.client.Set(ctx, g.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", g.key, err)
	}
	return nil
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}
