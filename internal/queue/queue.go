// Package queue feeds scrape tasks to the worker pool. The in-memory queue
// serves single-process runs; the Redis queue lets work survive restarts and
// fan out across processes.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrQueueClosed = errors.New("queue is closed")
)

// Task is one page to scrape, tied back to the job that requested it.
type Task struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	URL       string    `json:"url"`
	Site      string    `json:"site,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Queue interface {
	Push(ctx context.Context, task *Task) error
	Pop(ctx context.Context) (*Task, error)
	Size(ctx context.Context) (int, error)
	Close() error
}

// InMemoryQueue is a FIFO queue guarded by a condition variable. Pop blocks
// until a task arrives, the queue closes, or the context is cancelled.
type InMemoryQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []*Task
	closed bool
}

func NewInMemoryQueue() *InMemoryQueue {
	q := &InMemoryQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *InMemoryQueue) Push(_ context.Context, task *Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.tasks = append(q.tasks, task)
	q.cond.Signal()
	return nil
}

func (q *InMemoryQueue) Pop(ctx context.Context) (*Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.tasks) == 0 && !q.closed {
		done := make(chan struct{})
		go func() {
			q.cond.Wait()
			close(done)
		}()

		select {
		case <-ctx.Done():
			// wake the helper and wait for it to re-acquire the lock, so the
			// deferred unlock stays balanced
			q.cond.Broadcast()
			<-done
			return nil, ctx.Err()
		case <-done:
		}
	}

	if len(q.tasks) == 0 {
		return nil, ErrQueueClosed
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, nil
}

func (q *InMemoryQueue) Size(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks), nil
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
	return nil
}

// RedisQueue stores JSON-encoded tasks in a Redis list. Push is LPUSH and Pop
// is a blocking BRPOP, so tasks are delivered oldest first.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "scrape:tasks"
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Push(ctx context.Context, task *Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push task: %w", err)
	}
	return nil
}

func (q *RedisQueue) Pop(ctx context.Context) (*Task, error) {
	res, err := q.client.BRPop(ctx, 0, q.key).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("pop task: %w", err)
	}
	// BRPop returns [key, value]
	if len(res) != 2 {
		return nil, ErrQueueEmpty
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &task, nil
}

func (q *RedisQueue) Size(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("queue size: %w", err)
	}
	return int(n), nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
