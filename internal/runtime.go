package internal

import "slices"

// Runtime is the context widgets are created in: a frame scheduler, a logger
// and the set of mounted root widgets.
type Runtime struct {
	*FrameScheduler

	logger *Logger

	roots  []*Widget
	hidden bool
}

func NewRuntime(opts ...Option) (*Runtime, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		FrameScheduler: newFrameScheduler(cfg),
		logger:         cfg.logger,
	}, nil
}

func (r *Runtime) Logger() *Logger { return r.logger }

// Flush delivers frames until no more are requested and returns how many ran.
// It only does something when frames are delivered manually.
func (r *Runtime) Flush() int {
	frames, ok := r.frames.(*ManualFrames)
	if !ok {
		return 0
	}
	return frames.Flush()
}

// Mount makes w a root widget. Roots receive NotifyResize and SetHidden,
// and are drawn unless the runtime is hidden.
func (r *Runtime) Mount(w *Widget) {
	if w.mounted || w.IsDestructed() {
		return
	}
	if w.parent != nil {
		w.SetParent(nil)
	}

	w.mounted = true
	r.roots = append(r.roots, w)

	if r.hidden {
		w.DisableDraw()
	} else {
		w.EnableDraw()
	}
}

func (r *Runtime) Unmount(w *Widget) {
	if !w.mounted {
		return
	}
	w.mounted = false

	if i := slices.Index(r.roots, w); i >= 0 {
		r.roots = slices.Delete(r.roots, i, i+1)
	}
}

// Roots returns the mounted widgets in mount order.
func (r *Runtime) Roots() []*Widget {
	return slices.Clone(r.roots)
}

// NotifyResize tells every root that the viewport changed size.
func (r *Runtime) NotifyResize() {
	for _, w := range r.Roots() {
		w.TriggerResize()
	}
}

// SetHidden stops drawing all roots while the document is hidden and resumes
// once it is visible again.
func (r *Runtime) SetHidden(hidden bool) {
	if r.hidden == hidden {
		return
	}
	r.hidden = hidden

	for _, w := range r.Roots() {
		if hidden {
			w.DisableDraw()
		} else {
			w.EnableDraw()
		}
	}
}

func (r *Runtime) Hidden() bool { return r.hidden }
