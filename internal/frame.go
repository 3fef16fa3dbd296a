package internal

// FrameRequester delivers animation frames. RequestFrame must call fn exactly
// once, later, on the goroutine that owns the scheduler.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameScheduler is a Scheduler driven by a FrameRequester. Scheduling work
// requests a frame, with at most one request outstanding at a time.
type FrameScheduler struct {
	*Scheduler

	frames  FrameRequester
	batcher *Batcher

	// a frame was requested and has not run yet
	willRender bool

	frame func()
}

func NewFrameScheduler(opts ...Option) (*FrameScheduler, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	return newFrameScheduler(cfg), nil
}

func newFrameScheduler(cfg *runtimeOptions) *FrameScheduler {
	frames := cfg.frames
	if frames == nil {
		frames = &ManualFrames{}
	}

	f := &FrameScheduler{
		Scheduler: newScheduler(cfg),
		frames:    frames,
		batcher:   NewBatcher(),
	}
	f.frame = f.Frame

	return f
}

func (f *FrameScheduler) Add(t *Task, prio int) {
	f.Scheduler.Add(t, prio)
	if f.willRender || f.running {
		return
	}
	f.willRender = true
	f.request()
}

// AddNext also arms a frame while running, so the work deferred by the
// current run gets a frame of its own.
func (f *FrameScheduler) AddNext(t *Task, prio int) {
	f.Scheduler.AddNext(t, prio)
	if f.willRender {
		return
	}
	f.willRender = true
	if f.running {
		return
	}
	f.request()
}

func (f *FrameScheduler) AfterFrame(fn func()) {
	f.Scheduler.AfterFrame(fn)
	if f.willRender || f.running {
		return
	}
	f.willRender = true
	f.request()
}

// Frame runs the scheduler. It is what the FrameRequester calls back.
// A runaway run is a programming error and panics.
func (f *FrameScheduler) Frame() {
	f.willRender = false

	_, err := f.Scheduler.Run()
	if err != nil {
		panic(err)
	}

	if f.willRender {
		f.request()
	}
}

// Batch runs fn without requesting frames, then requests at most one frame
// once the outermost batch completes.
func (f *FrameScheduler) Batch(fn func()) {
	f.batcher.Batch(fn, func() {
		f.frames.RequestFrame(f.frame)
	})
}

func (f *FrameScheduler) Frames() FrameRequester { return f.frames }

func (f *FrameScheduler) request() {
	if f.batcher.Defer() {
		return
	}
	f.frames.RequestFrame(f.frame)
}

// ManualFrames queues frame requests until they are stepped explicitly.
// It is the host used by tests and headless rendering.
type ManualFrames struct {
	pending []func()
}

func (m *ManualFrames) RequestFrame(fn func()) {
	m.pending = append(m.pending, fn)
}

// Pending returns the number of outstanding frame requests.
func (m *ManualFrames) Pending() int { return len(m.pending) }

// Step delivers the frames requested so far and reports whether there were any.
func (m *ManualFrames) Step() bool {
	if len(m.pending) == 0 {
		return false
	}

	frames := m.pending
	m.pending = nil

	for _, fn := range frames {
		fn()
	}
	return true
}

// maxFlushFrames stops Flush from spinning on work that re-arms every frame.
const maxFlushFrames = 1000

// Flush steps frames until none are requested and returns how many steps ran.
func (m *ManualFrames) Flush() int {
	n := 0
	for n < maxFlushFrames && m.Step() {
		n++
	}
	return n
}
