package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](4)

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.Equal(t, 3, rq.Len())

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, rq.Len())
}

func TestRingQueueWrapsAround(t *testing.T) {
	rq := NewRingQueue[string](2)

	require.NoError(t, rq.Enqueue("a"))
	require.NoError(t, rq.Enqueue("b"))
	_, err := rq.Dequeue()
	require.NoError(t, err)
	require.NoError(t, rq.Enqueue("c"))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestRingQueueFullAndEmpty(t *testing.T) {
	rq := NewRingQueue[int](2)

	assert.True(t, rq.IsEmpty())
	_, err := rq.Dequeue()
	assert.Error(t, err)
	_, err = rq.Peek()
	assert.Error(t, err)

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	assert.True(t, rq.IsFull())
	assert.Error(t, rq.Enqueue(3))

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, rq.Len())
}
