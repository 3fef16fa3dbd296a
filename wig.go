package wig

import (
	"io"
	"time"

	"github.com/joeycumines/logiface"

	"github.com/AnatoleLucet/wig/internal"
)

func as[T any](v any) T {
	ret, _ := v.(T)
	return ret
}

// Priorities of scheduled work. Lower priorities run first within a frame,
// so measurements are taken before the DOM is written to.
const (
	PriorityMeasure = internal.PriorityMeasure
	PriorityRedraw  = internal.PriorityRedraw
	PriorityApply   = internal.PriorityApply
)

// DefaultMaxCycles is how many times a frame may loop over newly scheduled
// work before it is considered a runaway.
const DefaultMaxCycles = internal.DefaultMaxCycles

var (
	// ErrRunaway is the error a frame panics with when scheduled work never settles.
	ErrRunaway = internal.ErrRunaway
	// ErrDuplicateChild is returned when adding the same child twice.
	ErrDuplicateChild = internal.ErrDuplicateChild
	// ErrNotChild is returned when removing a widget from a parent it does not belong to.
	ErrNotChild = internal.ErrNotChild
)

type (
	// Runtime owns a frame scheduler and the mounted root widgets.
	Runtime = internal.Runtime
	// Scheduler runs prioritized tasks until no more work is scheduled.
	Scheduler = internal.Scheduler
	// FrameScheduler is a Scheduler requesting a frame whenever work is added.
	FrameScheduler = internal.FrameScheduler
	// Task is a unit of scheduled work, identified by its pointer.
	Task = internal.Task
	// Option configures a Runtime or a Scheduler.
	Option = internal.Option
	// Logger is the structured logger of a Runtime.
	Logger = internal.Logger

	// FrameRequester delivers animation frames to a FrameScheduler.
	FrameRequester = internal.FrameRequester
	// ManualFrames delivers frames when stepped, for tests and headless use.
	ManualFrames = internal.ManualFrames
)

// NewRuntime creates a runtime. Without WithFrameRequester, frames are
// delivered by Runtime.Flush.
func NewRuntime(opts ...Option) (*Runtime, error) {
	return internal.NewRuntime(opts...)
}

// GetRuntime returns the runtime widgets are created in by default.
// In the browser it is shared by the page, elsewhere each goroutine gets one.
func GetRuntime() *Runtime {
	return internal.GetRuntime()
}

// ReleaseRuntime drops the calling goroutine's default runtime.
func ReleaseRuntime() {
	internal.ReleaseRuntime()
}

// NewScheduler creates a standalone scheduler, driven by calling Run.
func NewScheduler(opts ...Option) (*Scheduler, error) {
	return internal.NewScheduler(opts...)
}

// NewTask wraps fn so it can be scheduled and cancelled.
func NewTask(name string, fn func()) *Task {
	return internal.NewTask(name, fn)
}

// NewLogger returns a logger writing JSON lines at level and above.
func NewLogger(w io.Writer, level logiface.Level) *Logger {
	return internal.NewLogger(w, level)
}

// WithLogger sets the logger of a runtime. A nil logger disables logging.
func WithLogger(logger *Logger) Option { return internal.WithLogger(logger) }

// WithMaxCycles overrides DefaultMaxCycles.
func WithMaxCycles(n int) Option { return internal.WithMaxCycles(n) }

// WithSlowFrameThreshold logs frames taking longer than d.
func WithSlowFrameThreshold(d time.Duration) Option { return internal.WithSlowFrameThreshold(d) }

// WithFrameRequester sets how frames are delivered.
func WithFrameRequester(frames FrameRequester) Option { return internal.WithFrameRequester(frames) }

// Flush runs the frames requested on the default runtime until it settles.
func Flush() int {
	return internal.GetRuntime().Flush()
}

// Batch holds back frame requests of the default runtime until fn returns.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}
