package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecuteKeepsOrder(t *testing.T) {
	var calls atomic.Int32
	pool := NewPool[int, int](4, func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 3 {
			return 0, errors.New("boom")
		}
		return n * n, nil
	})

	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	require.Len(t, tasks, 5)
	assert.EqualValues(t, 5, calls.Load())
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Input)
	}
	assert.Equal(t, 16, tasks[3].Result)
	assert.EqualError(t, tasks[2].Err, "boom")
}

func TestPoolExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool[int, int](0, func(ctx context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})
	tasks := pool.Execute(ctx, []int{1, 2, 3})
	assert.Len(t, tasks, 3)
	assert.Zero(t, calls.Load())
	assert.Nil(t, tasks[0].Err)
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}
