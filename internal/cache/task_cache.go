package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "tasktracker/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyListPrefix = "task:list:"
	keyGeneration = "task:list:gen"
)

// TaskCache caches the task list in Redis.
//
// Entries are keyed by a write generation. Invalidate bumps the generation,
// so a list read from the database before a write can only ever be stored
// under a generation nobody asks for again.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// cachedTask is the stored form of a task; field names are fixed so entries
// survive refactors of the domain type.
type cachedTask struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

func listKey(gen int64) string {
	return keyListPrefix + strconv.FormatInt(gen, 10)
}

// Generation returns the current write generation. It must be read before
// the database so the list can be stored under it afterwards.
func (c *TaskCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList returns the list cached for gen, or nil on a miss.
func (c *TaskCache) GetList(ctx context.Context, gen int64) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, listKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stored []cachedTask
	if err := json.Unmarshal(b, &stored); err != nil {
		return nil, err
	}
	list := make([]dom.Task, len(stored))
	for i, t := range stored {
		list[i] = dom.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Status:      dom.Status(t.Status),
		}
	}
	return list, nil
}

// SetList stores the list under gen.
func (c *TaskCache) SetList(ctx context.Context, gen int64, list []dom.Task) error {
	stored := make([]cachedTask, len(list))
	for i, t := range list {
		stored[i] = cachedTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Status:      string(t.Status),
		}
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(gen), b, c.ttl).Err()
}

// Invalidate starts a new generation; called after every write. Lists cached
// under older generations are left to expire.
func (c *TaskCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, keyGeneration).Err()
}
