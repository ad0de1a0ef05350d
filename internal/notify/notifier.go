package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notifier delivers best-effort task event notifications. Callers treat every
// send as fire-and-forget: a failed notification never fails the operation
// that triggered it.
type Notifier interface {
	TaskCreated(ctx context.Context, userID, taskID uuid.UUID) error
	TaskDeleted(ctx context.Context, userID, taskID uuid.UUID) error
}

// Event is the wire shape published to the Redis channel.
type Event struct {
	Type   string    `json:"type"`
	UserID uuid.UUID `json:"user_id"`
	TaskID uuid.UUID `json:"task_id"`
	At     time.Time `json:"at"`
}

// RedisNotifier publishes events to a Redis pub/sub channel.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

// NewRedisNotifier returns a notifier publishing to the given channel.
func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) TaskCreated(ctx context.Context, userID, taskID uuid.UUID) error {
	return n.publish(ctx, Event{Type: "task.created", UserID: userID, TaskID: taskID, At: time.Now().UTC()})
}

func (n *RedisNotifier) TaskDeleted(ctx context.Context, userID, taskID uuid.UUID) error {
	return n.publish(ctx, Event{Type: "task.deleted", UserID: userID, TaskID: taskID, At: time.Now().UTC()})
}

func (n *RedisNotifier) publish(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel, b).Err()
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) TaskCreated(_ context.Context, userID, taskID uuid.UUID) error {
	log.Printf("[notification] user %s created task %s", userID, taskID)
	return nil
}

func (LogNotifier) TaskDeleted(_ context.Context, userID, taskID uuid.UUID) error {
	log.Printf("[notification] user %s deleted task %s", userID, taskID)
	return nil
}
