package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("insert is idempotent per bucket", func(t *testing.T) {
		q := NewQueue()
		task := NewTask("a", nil)

		assert.True(t, q.Insert(task, 1))
		assert.False(t, q.Insert(task, 1))
		assert.True(t, q.Insert(task, 2))

		assert.Equal(t, 2, q.Len())
		assert.True(t, q.Has(task, 1))
		assert.True(t, q.Has(task, 2))
		assert.False(t, q.Has(task, 0))
		assert.False(t, q.Has(task, 7))
	})

	t.Run("remove swaps with last", func(t *testing.T) {
		q := NewQueue()
		a, b, c := NewTask("a", nil), NewTask("b", nil), NewTask("c", nil)
		q.Insert(a, 0)
		q.Insert(b, 0)
		q.Insert(c, 0)

		q.Remove(a, 0)

		assert.Equal(t, []*Task{c, b}, q.buckets[0])
		assert.False(t, q.Has(a, 0))
	})

	t.Run("remove of unknown task is a no-op", func(t *testing.T) {
		q := NewQueue()
		a := NewTask("a", nil)
		q.Insert(a, 0)

		assert.NotPanics(t, func() {
			q.Remove(NewTask("b", nil), 0)
			q.Remove(a, 5)
		})
		assert.Equal(t, 1, q.Len())
	})

	t.Run("absorb moves everything", func(t *testing.T) {
		q, other := NewQueue(), NewQueue()
		a, b := NewTask("a", nil), NewTask("b", nil)
		q.Insert(a, 0)
		other.Insert(a, 0)
		other.Insert(b, 3)

		q.Absorb(other)

		assert.Equal(t, 2, q.Len())
		assert.True(t, q.Has(b, 3))
		assert.Equal(t, 0, other.Len())
	})

	t.Run("nil task name", func(t *testing.T) {
		var task *Task
		assert.Equal(t, "<nil>", task.Name())
		assert.Equal(t, "a", NewTask("a", nil).String())
	})
}
