// Package redis caches composed chat responses keyed by a hash of the
// normalized query, so repeated questions within the TTL skip the search
// backend entirely.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/pkg/logger"
)

type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	logger.Info("Redis cache initialized",
		zap.String("addr", fmt.Sprintf("%s:%d", host, port)),
		zap.Duration("ttl", ttl),
	)

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// SetResponse stores a composed chat response under the query hash.
func (c *Client) SetResponse(ctx context.Context, queryHash string, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := c.client.Set(ctx, "chat:"+queryHash, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set response cache: %w", err)
	}

	logger.Debug("Chat response cached", zap.String("query_hash", queryHash))
	return nil
}

// GetResponse returns the cached JSON payload for the query hash. The bool
// reports whether the key was present; the payload is returned as raw bytes
// so the handler can replay it without re-marshaling.
func (c *Client) GetResponse(ctx context.Context, queryHash string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, "chat:"+queryHash).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get response cache: %w", err)
	}

	logger.Debug("Chat response cache hit", zap.String("query_hash", queryHash))
	return data, true, nil
}
