//go:build !(js && wasm)

package internal

import (
	"context"
	"time"

	"github.com/joeycumines/go-eventloop"
)

// FrameLoop delivers frames from an event loop, at most once per interval.
// Widgets of a runtime driven by a FrameLoop belong to the loop goroutine:
// other goroutines reach them through Post.
type FrameLoop struct {
	loop     *eventloop.Loop
	interval time.Duration

	// loop goroutine only
	pending []func()
	armed   bool
}

// NewFrameLoop creates the loop, ticking 60 times a second if interval is not
// positive. Frames are delivered once Run is called.
func NewFrameLoop(interval time.Duration) (*FrameLoop, error) {
	if interval <= 0 {
		interval = time.Second / 60
	}

	loop, err := eventloop.New()
	if err != nil {
		return nil, err
	}

	return &FrameLoop{
		loop:     loop,
		interval: interval,
	}, nil
}

// RequestFrame queues fn for the next frame. It may be called from any
// goroutine.
func (l *FrameLoop) RequestFrame(fn func()) {
	_ = l.loop.Submit(func() {
		l.pending = append(l.pending, fn)
		if l.armed {
			return
		}
		if _, err := l.loop.ScheduleTimer(l.interval, l.frame); err == nil {
			l.armed = true
		}
	})
}

func (l *FrameLoop) frame() {
	l.armed = false

	frames := l.pending
	l.pending = nil
	for _, fn := range frames {
		fn()
	}
}

// Post runs fn on the loop goroutine. It fails once the loop is shut down.
func (l *FrameLoop) Post(fn func()) error {
	return l.loop.Submit(fn)
}

// Run delivers posted work and frames until ctx is done or Shutdown is called.
func (l *FrameLoop) Run(ctx context.Context) error {
	return l.loop.Run(ctx)
}

// Shutdown stops the loop once queued work has run.
func (l *FrameLoop) Shutdown(ctx context.Context) error {
	return l.loop.Shutdown(ctx)
}
