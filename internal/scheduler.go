package internal

import (
	"errors"
	"fmt"
	"time"
)

// ErrRunaway is returned by Run when work keeps getting scheduled into the
// current frame past the cycle limit.
var ErrRunaway = errors.New("scheduler did not converge")

// Priorities used by widgets. Measurement runs before mutation.
const (
	PriorityMeasure = 0
	PriorityRedraw  = 1
	PriorityApply   = 2
)

type Scheduler struct {
	// queue is drained by Run. next receives AddNext calls and is the same
	// queue as current outside of Run, so deferring only matters while running.
	queue *PriorityQueue
	next  *PriorityQueue
	spare *PriorityQueue

	// bucket swapped in while another bucket is being executed
	scratch []*Task

	afterFrame []func()

	// incremented each time Run completes
	frameCount int

	priority int
	cycle    int
	running  bool

	maxCycles int
	slowFrame time.Duration
	logger    *Logger
}

func NewScheduler(opts ...Option) (*Scheduler, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	return newScheduler(cfg), nil
}

func newScheduler(cfg *runtimeOptions) *Scheduler {
	q := NewQueue()

	return &Scheduler{
		queue: q,
		next:  q,
		spare: NewQueue(),

		priority: -1,

		maxCycles: cfg.maxCycles,
		slowFrame: cfg.slowFrame,
		logger:    cfg.logger,
	}
}

// Add schedules t at prio for the current frame. A task still waiting in the
// bucket being run is not added again.
func (s *Scheduler) Add(t *Task, prio int) {
	if !s.checkPriority(t, prio) {
		return
	}
	if t.draining && prio == s.priority {
		return
	}
	s.queue.Insert(t, prio)
}

// AddNext schedules t at prio for the next Run. While a Run is in progress,
// t is guaranteed not to execute before that Run returns.
func (s *Scheduler) AddNext(t *Task, prio int) {
	if !s.checkPriority(t, prio) {
		return
	}
	s.next.Insert(t, prio)
}

// Remove unschedules t. A task waiting in the bucket being run still runs.
func (s *Scheduler) Remove(t *Task, prio int) { s.queue.Remove(t, prio) }
func (s *Scheduler) RemoveNext(t *Task, prio int) { s.next.Remove(t, prio) }
func (s *Scheduler) Has(t *Task, prio int) bool { return s.queue.Has(t, prio) }
func (s *Scheduler) HasNext(t *Task, prio int) bool { return s.next.Has(t, prio) }

// AfterFrame runs fn once after the priority buckets of the current Run have
// drained. Work scheduled by fn makes the Run perform another cycle.
func (s *Scheduler) AfterFrame(fn func()) {
	if fn == nil {
		return
	}
	s.afterFrame = append(s.afterFrame, fn)
}

// Run drains the current queue in ascending priority order, repeating until a
// cycle finds nothing to do, and returns the number of cycles performed.
func (s *Scheduler) Run() (int, error) {
	q := s.queue
	s.next = s.spare
	s.running = true

	start := time.Now()
	calls := 0
	cycles := 0

	for empty := false; !empty; {
		cycles++
		s.cycle = cycles

		if cycles > s.maxCycles {
			err := fmt.Errorf("%w: %d cycles in frame %d", ErrRunaway, s.maxCycles, s.frameCount)
			s.abort(q)
			return cycles, err
		}

		empty = true

		for prio := 0; prio < len(q.buckets); prio++ {
			tasks := q.buckets[prio]
			if len(tasks) == 0 {
				continue
			}

			empty = false
			s.priority = prio

			q.buckets[prio] = s.scratch[:0]
			s.scratch = tasks

			for _, t := range tasks {
				t.draining = true
			}
			for i, t := range tasks {
				t.draining = false
				s.call(t.Name(), t.fn)
				tasks[i] = nil
				calls++
			}
		}

		if len(s.afterFrame) > 0 {
			callbacks := s.afterFrame
			s.afterFrame = nil
			empty = false

			for _, fn := range callbacks {
				s.call("after-frame", fn)
			}
		}
	}

	s.queue = s.next
	s.spare = q

	if s.slowFrame > 0 {
		if elapsed := time.Since(start); elapsed > s.slowFrame {
			s.logger.Notice().
				Int("frame", s.frameCount).
				Int("cycles", cycles).
				Int("calls", calls).
				Dur("took", elapsed).
				Log("slow frame")
		}
	}

	s.finish()
	return cycles, nil
}

// abort restores the idle state after a runaway Run. Unfinished work and
// work deferred to the next frame are kept in the current queue.
func (s *Scheduler) abort(q *PriorityQueue) {
	q.Absorb(s.next)
	s.spare = s.next
	s.queue = q
	s.next = q

	s.logger.Crit().
		Int("frame", s.frameCount).
		Int("max_cycles", s.maxCycles).
		Int("pending", q.Len()).
		Log("scheduler did not converge")

	s.finish()
}

func (s *Scheduler) finish() {
	s.running = false
	s.priority = -1
	s.frameCount++
}

func (s *Scheduler) call(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Err().
				Str("task", name).
				Str("at", s.DescribeNow()).
				Any("panic", r).
				Log("scheduled callback panicked")
		}
	}()

	if fn != nil {
		fn()
	}
}

func (s *Scheduler) checkPriority(t *Task, prio int) bool {
	if prio >= 0 {
		return true
	}

	s.logger.Warning().
		Str("task", t.Name()).
		Int("priority", prio).
		Log("negative priority ignored")
	return false
}

// FrameCount returns the number of completed runs.
func (s *Scheduler) FrameCount() int { return s.frameCount }

// CurrentPriority returns the priority being executed, or -1 when idle.
func (s *Scheduler) CurrentPriority() int { return s.priority }

// CurrentCycle returns the cycle of the current or last run.
func (s *Scheduler) CurrentCycle() int { return s.cycle }

func (s *Scheduler) Running() bool { return s.running }

func (s *Scheduler) DescribeNow() string {
	if !s.running {
		return "<not scheduled>"
	}
	return fmt.Sprintf("<frame: %d, prio: %d, cycle: %d>", s.frameCount, s.priority, s.cycle)
}
