package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	dom "taskvault/internal/domain"
)

const (
	keyListPrefix = "tasks:list:"
	prioInfix     = ":prio:"
)

// TaskCache caches per-user task lists in Redis. Keys:
//
//	tasks:list:<userID>                 full list
//	tasks:list:<userID>:prio:<priority> priority-filtered list
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for a user, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID uuid.UUID) ([]dom.Task, error) {
	return c.get(ctx, listKey(userID))
}

// SetList stores the list for a user.
func (c *TaskCache) SetList(ctx context.Context, userID uuid.UUID, list []dom.Task) error {
	return c.set(ctx, listKey(userID), list)
}

// GetByPriority returns the cached priority-filtered list, or nil on miss.
func (c *TaskCache) GetByPriority(ctx context.Context, userID uuid.UUID, priority string) ([]dom.Task, error) {
	return c.get(ctx, priorityKey(userID, priority))
}

// SetByPriority stores the priority-filtered list.
func (c *TaskCache) SetByPriority(ctx context.Context, userID uuid.UUID, priority string, list []dom.Task) error {
	return c.set(ctx, priorityKey(userID, priority), list)
}

// InvalidateUser removes the user's list key and all priority keys
// (cache invalidation on write).
func (c *TaskCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if err := c.rdb.Del(ctx, listKey(userID)).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, listKey(userID)+prioInfix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *TaskCache) get(ctx context.Context, key string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *TaskCache) set(ctx context.Context, key string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func listKey(userID uuid.UUID) string {
	return keyListPrefix + userID.String()
}

func priorityKey(userID uuid.UUID, priority string) string {
	return listKey(userID) + prioInfix + strings.ToLower(strings.TrimSpace(priority))
}
