package internal

// Batcher holds back frame requests while a batch is open.
type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, frame requests are deferred until the outermost batch is complete
	depth int

	// a frame was requested while batching
	deferred bool
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Defer records a frame request made during a batch. It reports false when
// no batch is open, in which case the caller should request the frame itself.
func (b *Batcher) Defer() bool {
	if b.depth == 0 {
		return false
	}
	b.deferred = true
	return true
}

// Batch runs fn and calls flush once the outermost batch completes, if any
// request was deferred in between.
func (b *Batcher) Batch(fn, flush func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && b.deferred {
			b.deferred = false
			flush()
		}
	}()

	fn()
}
