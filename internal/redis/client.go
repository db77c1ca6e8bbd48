package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// FormState is the per-user conversational form: which command is in flight,
// which step it is on, and the answers collected so far. One state per
// Telegram user id, TTL-bound, replacing the in-process map the MVP used.
type FormState struct {
	UserID    int64                  `json:"user_id"`
	ChatID    int64                  `json:"chat_id"`
	Command   string                 `json:"command"`
	Step      string                 `json:"step"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func formKey(userID int64) string {
	return fmt.Sprintf("form:%d", userID)
}

func (c *Client) SetFormState(userID int64, state *FormState, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal form state: %w", err)
	}

	return c.rdb.Set(ctx, formKey(userID), jsonData, ttl).Err()
}

// GetFormState returns (nil, nil) when the user has no form in flight.
func (c *Client) GetFormState(userID int64) (*FormState, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, formKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get form state: %w", err)
	}

	var state FormState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form state: %w", err)
	}

	return &state, nil
}

func (c *Client) DeleteFormState(userID int64) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, formKey(userID)).Err()
}

func (c *Client) Ping() error {
	ctx := context.Background()
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
