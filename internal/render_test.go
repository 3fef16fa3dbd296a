package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logRender(log *[]string, name string, phase Phase, deps ...string) RenderTask {
	return RenderTask{
		Name:         name,
		Phase:        phase,
		Dependencies: deps,
		Run: func(w *Widget) *Step {
			*log = append(*log, name)
			return nil
		},
	}
}

func TestRenders(t *testing.T) {
	t.Run("measure runs before the redraw and apply after it", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)

		Box := DefineClass(ClassDef{
			Name:    "Box",
			Options: map[string]any{"value": 0},
			Types:   map[string]string{"value": TypeNumber},
			Redraw: func(w *Widget) {
				log = append(log, "redraw")
				WidgetClass.Redraw(w)
			},
			Renders: []RenderTask{
				logRender(&log, "apply", PhaseApply, "value"),
				logRender(&log, "measure", PhaseMeasure, "value"),
			},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Flush()
		assert.Empty(t, log)

		r.Mount(w)
		r.Flush()
		assert.Equal(t, []string{"measure", "redraw", "apply"}, log)
	})

	t.Run("only tasks depending on a change run again", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)

		Box := DefineClass(ClassDef{
			Name:    "Box",
			Options: map[string]any{"a": 0, "b": 0},
			Types:   map[string]string{"a": TypeNumber, "b": TypeNumber},
			Renders: []RenderTask{
				logRender(&log, "a", PhaseApply, "a"),
				logRender(&log, "b", PhaseApply, "b"),
				logRender(&log, "both", PhaseApply, "a", "b"),
			},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)
		r.Flush()
		log = log[:0]

		w.Set("a", 1)
		r.Flush()
		assert.Equal(t, []string{"a", "both"}, log)

		log = log[:0]
		w.Invalidate("b")
		w.Set("b", 2)
		r.Flush()
		assert.Equal(t, []string{"b", "both"}, log)
	})

	t.Run("steps continue in this frame or the next", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)
		frames := r.Frames().(*ManualFrames)

		Box := DefineClass(ClassDef{
			Name: "Box",
			Renders: []RenderTask{{
				Name:  "apply",
				Phase: PhaseApply,
				Run: func(w *Widget) *Step {
					log = append(log, "apply")
					return DeferMeasure(func(w *Widget) *Step {
						log = append(log, "measure step")
						return DeferApplyNext(func(w *Widget) *Step {
							log = append(log, "next frame")
							return nil
						})
					})
				},
			}},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)

		require.True(t, frames.Step())
		assert.Equal(t, []string{"apply", "measure step"}, log)

		require.True(t, frames.Step())
		assert.Equal(t, []string{"apply", "measure step", "next frame"}, log)
	})

	t.Run("a step returning steps animates until it returns nil", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		ticks := 0
		var tick func(w *Widget) *Step
		tick = func(w *Widget) *Step {
			ticks++
			if ticks == 3 {
				return nil
			}
			return DeferApplyNext(tick)
		}

		Box := DefineClass(ClassDef{
			Name:    "Box",
			Renders: []RenderTask{{Name: "animate", Run: tick}},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)

		assert.GreaterOrEqual(t, r.Flush(), 3)
		assert.Equal(t, 3, ticks)
	})

	t.Run("resizing runs resize dependents", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)

		Box := DefineClass(ClassDef{
			Name: "Box",
			Renders: []RenderTask{
				logRender(&log, "layout", PhaseMeasure, ResizeDependency),
			},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)
		r.Flush()
		log = log[:0]

		w.TriggerResize()
		r.Flush()
		assert.Equal(t, []string{"layout"}, log)
	})

	t.Run("work waits while the widget is not drawn", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)
		frames := r.Frames().(*ManualFrames)

		Box := DefineClass(ClassDef{
			Name:    "Box",
			Options: map[string]any{"value": 0},
			Types:   map[string]string{"value": TypeNumber},
			Renders: []RenderTask{{
				Name:         "apply",
				Phase:        PhaseApply,
				Dependencies: []string{"value"},
				Run: func(w *Widget) *Step {
					log = append(log, "apply")
					return DeferApplyNext(func(w *Widget) *Step {
						log = append(log, "later")
						return nil
					})
				},
			}},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)
		require.True(t, frames.Step())
		assert.Equal(t, []string{"apply"}, log)

		w.DisableDraw()
		w.Set("value", 1)
		r.Flush()
		assert.Equal(t, []string{"apply"}, log)

		w.EnableDraw()
		r.Flush()
		// the held step runs after the task that was dirty
		assert.Equal(t, []string{"apply", "apply", "later", "later"}, log)
	})

	t.Run("a panicking task does not stop the others", func(t *testing.T) {
		log := []string{}
		r, buf := newTestRuntime(t)

		Box := DefineClass(ClassDef{
			Name: "Box",
			Renders: []RenderTask{
				{Name: "broken", Run: func(w *Widget) *Step { panic("oops") }},
				logRender(&log, "fine", PhaseApply),
			},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)
		r.Flush()

		assert.Equal(t, []string{"fine"}, log)
		assert.Contains(t, buf.String(), "render task panicked")
		assert.Contains(t, buf.String(), "broken")
	})

	t.Run("inherited tasks run first", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)

		Base := DefineClass(ClassDef{
			Name:    "Base",
			Renders: []RenderTask{logRender(&log, "base", PhaseApply)},
		})
		Derived := DefineClass(ClassDef{
			Name:    "Derived",
			Extends: Base,
			Renders: []RenderTask{logRender(&log, "derived", PhaseApply)},
		})
		Derived.AddRender(logRender(&log, "added", PhaseApply))

		assert.Len(t, Base.Renders(), 1)

		w := NewWidget(Derived, nil, WithRuntime(r))
		r.Mount(w)
		r.Flush()
		assert.Equal(t, []string{"base", "derived", "added"}, log)
	})

	t.Run("recalculation derives an option", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		Rect := DefineClass(ClassDef{
			Name:    "Rect",
			Options: map[string]any{"width": 2.0, "height": 3.0, "area": 0.0},
			Types: map[string]string{
				"width":  TypeNumber,
				"height": TypeNumber,
				"area":   TypeNumber,
			},
			Renders: []RenderTask{
				Recalculation("area", []string{"width", "height"}, func(w *Widget) {
					w.Set("area", w.Get("width").(float64)*w.Get("height").(float64))
				}),
			},
		})

		w := NewWidget(Rect, nil, WithRuntime(r))
		r.Mount(w)
		r.Flush()
		assert.Equal(t, 6.0, w.Get("area"))

		w.Set("width", 4.0)
		r.Flush()
		assert.Equal(t, 12.0, w.Get("area"))
	})

	t.Run("destroying drops pending steps", func(t *testing.T) {
		log := []string{}
		r, _ := newTestRuntime(t)
		frames := r.Frames().(*ManualFrames)

		Box := DefineClass(ClassDef{
			Name: "Box",
			Renders: []RenderTask{{
				Name:  "apply",
				Phase: PhaseApply,
				Run: func(w *Widget) *Step {
					log = append(log, "apply")
					return DeferApplyNext(func(w *Widget) *Step {
						log = append(log, "late")
						return nil
					})
				},
			}},
		})

		w := NewWidget(Box, nil, WithRuntime(r))
		r.Mount(w)
		require.True(t, frames.Step())

		w.Destroy()
		r.Flush()
		assert.Equal(t, []string{"apply"}, log)
	})
}
