package internal

// Task is a schedulable callback. Tasks are identified by pointer, so the
// same *Task can be removed or tested for after it was added.
type Task struct {
	name string
	fn   func()

	// set while the task waits in the bucket a Run is draining
	draining bool
}

func NewTask(name string, fn func()) *Task {
	return &Task{name: name, fn: fn}
}

func (t *Task) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

func (t *Task) String() string { return t.Name() }

// PriorityQueue buckets tasks by a non-negative priority, lower first.
//
// Removal swaps the removed task with the last one of its bucket, so the
// order of tasks inside a bucket is not preserved once something was removed.
type PriorityQueue struct {
	buckets [][]*Task // [priority]tasks
}

func NewQueue() *PriorityQueue {
	return &PriorityQueue{}
}

// Insert adds the task to the bucket of the given priority.
// It reports false if the task is already in that bucket.
func (q *PriorityQueue) Insert(t *Task, prio int) bool {
	if prio >= len(q.buckets) {
		grown := make([][]*Task, prio+1)
		copy(grown, q.buckets)
		q.buckets = grown
	}

	bucket := q.buckets[prio]
	for _, other := range bucket {
		if other == t {
			return false
		}
	}

	q.buckets[prio] = append(bucket, t)
	return true
}

func (q *PriorityQueue) Remove(t *Task, prio int) {
	if prio >= len(q.buckets) {
		return
	}

	bucket := q.buckets[prio]
	for i := 0; i < len(bucket); i++ {
		if bucket[i] != t {
			continue
		}

		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = nil
		bucket = bucket[:last]
		i--
	}
	q.buckets[prio] = bucket
}

func (q *PriorityQueue) Has(t *Task, prio int) bool {
	if prio >= len(q.buckets) {
		return false
	}

	for _, other := range q.buckets[prio] {
		if other == t {
			return true
		}
	}
	return false
}

// Len returns the number of tasks over all priorities.
func (q *PriorityQueue) Len() int {
	n := 0
	for _, bucket := range q.buckets {
		n += len(bucket)
	}
	return n
}

// Absorb moves every task of other into q, leaving other empty.
func (q *PriorityQueue) Absorb(other *PriorityQueue) {
	for prio, bucket := range other.buckets {
		for i, t := range bucket {
			q.Insert(t, prio)
			bucket[i] = nil
		}
		other.buckets[prio] = bucket[:0]
	}
}
