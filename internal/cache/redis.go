package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitecrew/gantt/internal/domain"
)

const defaultKeyPrefix = "gantt:tasks:"

// RedisTaskCache shares task snapshots between processes through Redis.
// Values are JSON arrays of tasks with a per-key expiry.
type RedisTaskCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisTaskCache wraps client. ttl zero means keys never expire.
func NewRedisTaskCache(client *redis.Client, ttl time.Duration) *RedisTaskCache {
	return &RedisTaskCache{client: client, ttl: ttl, prefix: defaultKeyPrefix}
}

// NewRedisClient builds a client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisTaskCache) key(projectID string) string {
	return c.prefix + projectID
}

func (c *RedisTaskCache) Get(ctx context.Context, projectID string) ([]domain.ScheduleTask, bool, error) {
	data, err := c.client.Get(ctx, c.key(projectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading task cache: %w", err)
	}
	var tasks []domain.ScheduleTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("decoding task cache: %w", err)
	}
	return tasks, true, nil
}

func (c *RedisTaskCache) Set(ctx context.Context, projectID string, tasks []domain.ScheduleTask) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding task cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key(projectID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing task cache: %w", err)
	}
	return nil
}

func (c *RedisTaskCache) Invalidate(ctx context.Context, projectID string) error {
	if err := c.client.Del(ctx, c.key(projectID)).Err(); err != nil {
		return fmt.Errorf("invalidating task cache: %w", err)
	}
	return nil
}
