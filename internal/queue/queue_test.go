package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueueFIFO(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, &Task{ID: "a"}))
	require.NoError(t, q.Push(ctx, &Task{ID: "b"}))

	size, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)

	second, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", second.ID)
}

func TestInMemoryQueuePopBlocksUntilPush(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	done := make(chan *Task, 1)
	go func() {
		task, err := q.Pop(ctx)
		if err == nil {
			done <- task
		}
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Push(ctx, &Task{ID: "late"}))

	select {
	case task := <-done:
		assert.Equal(t, "late", task.ID)
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after Push")
	}
}

func TestInMemoryQueuePopCancellation(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryQueueClose(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, &Task{ID: "a"}))
	require.NoError(t, q.Close())

	// push after close is refused
	assert.ErrorIs(t, q.Push(ctx, &Task{ID: "b"}), ErrQueueClosed)

	// queued tasks still drain
	task, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", task.ID)

	// then the closed queue reports it
	_, err = q.Pop(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
}
