package internal

import "slices"

// Phase is the stage of a frame a render task runs in. Measure tasks run
// before the redraw hook and should only read, apply tasks run after it.
type Phase int

const (
	PhaseMeasure Phase = iota
	PhaseApply
)

func (p Phase) String() string {
	if p == PhaseMeasure {
		return "measure"
	}
	return "apply"
}

// normalize maps unknown phases to PhaseApply.
func (p Phase) normalize() Phase {
	if p == PhaseMeasure {
		return PhaseMeasure
	}
	return PhaseApply
}

func (p Phase) priority() int {
	if p == PhaseMeasure {
		return PriorityMeasure
	}
	return PriorityApply
}

// ResizeDependency is invalidated each time the widget resizes.
const ResizeDependency = "@resize"

// RenderTask runs in its phase of the frame after one of its dependencies was
// set or invalidated, and once after the widget is created. Dependencies are
// option names or ResizeDependency.
type RenderTask struct {
	Name         string
	Phase        Phase
	Dependencies []string
	Run          func(w *Widget) *Step
}

// Step continues a render task. It runs in its phase of the current frame,
// or of the next one when Next is set. A step returning a step animates,
// returning nil stops.
type Step struct {
	Phase Phase
	Next  bool
	Run   func(w *Widget) *Step
}

func DeferMeasure(fn func(w *Widget) *Step) *Step {
	return &Step{Phase: PhaseMeasure, Run: fn}
}

func DeferApply(fn func(w *Widget) *Step) *Step {
	return &Step{Phase: PhaseApply, Run: fn}
}

func DeferMeasureNext(fn func(w *Widget) *Step) *Step {
	return &Step{Phase: PhaseMeasure, Next: true, Run: fn}
}

func DeferApplyNext(fn func(w *Widget) *Step) *Step {
	return &Step{Phase: PhaseApply, Next: true, Run: fn}
}

// Recalculation is a measure task deriving options from its dependencies,
// typically by calling Set.
func Recalculation(name string, dependencies []string, fn func(w *Widget)) RenderTask {
	return RenderTask{
		Name:         name,
		Phase:        PhaseMeasure,
		Dependencies: dependencies,
		Run: func(w *Widget) *Step {
			fn(w)
			return nil
		},
	}
}

// AddRender appends a render task. Widgets created before the call do not
// run it.
func (c *Class) AddRender(t RenderTask) {
	c.renders = append(c.renders, t)
}

// Renders returns the render tasks of c, those of ancestors first.
func (c *Class) Renders() []RenderTask {
	var ret []RenderTask
	if c.parent != nil {
		ret = c.parent.Renders()
	}
	return append(ret, c.renders...)
}

type renderState struct {
	tasks []RenderTask
	dirty []bool

	steps [2][]pendingStep
	phase [2]*Task
}

type pendingStep struct {
	name  string
	frame int
	run   func(w *Widget) *Step
}

func (w *Widget) initRenders() {
	r := &w.renders
	r.tasks = w.class.Renders()
	r.dirty = make([]bool, len(r.tasks))
	for i := range r.tasks {
		r.tasks[i].Phase = r.tasks[i].Phase.normalize()
		r.dirty[i] = true
	}
	for _, p := range []Phase{PhaseMeasure, PhaseApply} {
		r.phase[p] = NewTask(w.class.name+"."+p.String(), func() { w.runPhase(p) })
	}
}

// invalidateRenders marks the render tasks depending on dep.
func (w *Widget) invalidateRenders(dep string) {
	r := &w.renders
	for i, t := range r.tasks {
		if r.dirty[i] || !slices.Contains(t.Dependencies, dep) {
			continue
		}
		r.dirty[i] = true
		if w.drawn {
			w.runtime.Add(r.phase[t.Phase], t.Phase.priority())
		}
	}
}

// resumeRenders schedules the phases holding work kept while not drawn.
func (w *Widget) resumeRenders() {
	r := &w.renders
	for _, p := range []Phase{PhaseMeasure, PhaseApply} {
		pending := len(r.steps[p]) > 0
		for i, t := range r.tasks {
			if pending {
				break
			}
			pending = t.Phase == p && r.dirty[i]
		}
		if pending {
			w.runtime.Add(r.phase[p], p.priority())
		}
	}
}

// pauseRenders withdraws the scheduled phases. Dirty tasks and steps are kept.
func (w *Widget) pauseRenders() {
	for _, p := range []Phase{PhaseMeasure, PhaseApply} {
		t := w.renders.phase[p]
		if t == nil {
			continue
		}
		w.runtime.Remove(t, p.priority())
		w.runtime.RemoveNext(t, p.priority())
	}
}

func (w *Widget) runPhase(p Phase) {
	if w.IsDestructed() || !w.drawn {
		return
	}
	r := &w.renders

	for i, t := range r.tasks {
		// a task may hide or destroy the widget
		if w.IsDestructed() || !w.drawn {
			return
		}
		if t.Phase != p || !r.dirty[i] {
			continue
		}
		r.dirty[i] = false
		w.runStep(t.Name, t.Run)
	}

	frame := w.runtime.FrameCount()
	steps := r.steps[p]
	r.steps[p] = nil
	for _, s := range steps {
		if w.IsDestructed() {
			return
		}
		if s.frame > frame || !w.drawn {
			r.steps[p] = append(r.steps[p], s)
			continue
		}
		w.runStep(s.name, s.run)
	}
	if !w.drawn {
		return
	}

	for _, s := range r.steps[p] {
		if s.frame > frame {
			w.runtime.AddNext(r.phase[p], p.priority())
			break
		}
	}
}

func (w *Widget) runStep(name string, run func(w *Widget) *Step) {
	if run == nil {
		return
	}

	var next *Step
	func() {
		defer func() {
			if err := recover(); err != nil {
				w.logger().Err().
					Str("widget", w.class.name).
					Str("task", name).
					Any("panic", err).
					Log("render task panicked")
			}
		}()
		next = run(w)
	}()

	if next == nil || next.Run == nil || w.IsDestructed() {
		return
	}

	r := &w.renders
	p := next.Phase.normalize()
	frame := w.runtime.FrameCount()
	if next.Next {
		frame++
	}
	r.steps[p] = append(r.steps[p], pendingStep{name: name, frame: frame, run: next.Run})
	if !w.drawn {
		return
	}
	if next.Next {
		w.runtime.AddNext(r.phase[p], p.priority())
	} else {
		w.runtime.Add(r.phase[p], p.priority())
	}
}
