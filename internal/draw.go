package internal

import "github.com/AnatoleLucet/wig/internal/dom"

// TriggerDraw schedules a redraw for the current frame. While the widget is
// not drawn the request is remembered and scheduled by EnableDraw.
func (w *Widget) TriggerDraw() {
	if w.needsRedraw {
		return
	}
	w.needsRedraw = true
	if w.drawn {
		w.runtime.Add(w.redrawTask, PriorityRedraw)
	}
}

// TriggerDrawNext is TriggerDraw for the next frame.
func (w *Widget) TriggerDrawNext() {
	if w.needsRedraw {
		return
	}
	w.needsRedraw = true
	if w.drawn {
		w.runtime.AddNext(w.redrawTask, PriorityRedraw)
	}
}

// DrawOnce queues fn for the next redraw. Queuing the same key twice before
// the redraw runs keeps the first fn.
func (w *Widget) DrawOnce(key string, fn func(w *Widget)) {
	for _, e := range w.drawQueue {
		if e.key == key {
			return
		}
	}
	w.drawQueue = append(w.drawQueue, drawEntry{key: key, fn: fn})
	w.TriggerDraw()
}

func (w *Widget) redraw() {
	if !w.drawn {
		return
	}
	if w.needsDraw {
		w.needsDraw = false
		w.class.Draw(w)
	}
	w.needsRedraw = false
	w.Emit("redraw")
	w.class.Redraw(w)
}

func (w *Widget) resizeIfDrawn() {
	if w.IsDestructed() {
		return
	}
	if !w.drawn {
		w.TriggerResize()
		return
	}
	w.class.Resize(w)
	w.invalidateRenders(ResizeDependency)
}

// TriggerResize marks the widget and all its descendants as needing a resize.
func (w *Widget) TriggerResize() {
	if w.IsDestructed() {
		return
	}
	if needs, _ := w.options["needs_resize"].(bool); needs {
		return
	}
	w.Set("needs_resize", true)
	w.TriggerResizeChildren()
}

func (w *Widget) TriggerResizeChildren() {
	for _, c := range w.Children() {
		c.TriggerResize()
	}
}

// ScheduleResize runs the resize hook at the start of the next frame.
func (w *Widget) ScheduleResize() {
	if w.IsDestructed() {
		return
	}
	w.runtime.AddNext(w.resizeTask, PriorityMeasure)
}

// ObserveResize calls cb in the frame after each resize, once per frame.
// The returned function stops observing.
func (w *Widget) ObserveResize(cb func(w *Widget)) func() {
	triggered := false
	task := NewTask(w.class.name+".observe-resize", func() {
		if w.IsDestructed() {
			return
		}
		triggered = false
		if !w.drawn {
			w.TriggerResize()
			return
		}
		cb(w)
	})

	w.TriggerResize()
	return w.On("resize", func(w *Widget, args ...any) any {
		if !triggered {
			triggered = true
			w.runtime.AddNext(task, PriorityMeasure)
		}
		return nil
	})
}

// --- Visibility ------------------------------------------------------------

// EnableDraw makes the widget and its children eligible for redraws and
// schedules pending ones.
func (w *Widget) EnableDraw() {
	if w.drawn {
		return
	}
	w.drawn = true
	if w.needsRedraw {
		w.runtime.Add(w.redrawTask, PriorityRedraw)
	}
	w.resumeRenders()
	w.Emit("show")
	w.EnableDrawChildren()
}

// DisableDraw withdraws scheduled redraws of the widget and its children.
func (w *Widget) DisableDraw() {
	if !w.drawn {
		return
	}
	w.drawn = false
	if w.needsRedraw {
		w.runtime.Remove(w.redrawTask, PriorityRedraw)
		w.runtime.RemoveNext(w.redrawTask, PriorityRedraw)
	}
	w.pauseRenders()
	w.Emit("hide")
	w.DisableDrawChildren()
}

func (w *Widget) EnableDrawChildren() {
	for _, c := range w.Children() {
		c.EnableDraw()
	}
}

func (w *Widget) DisableDrawChildren() {
	for _, c := range w.Children() {
		c.DisableDraw()
	}
}

func (w *Widget) Hidden() bool {
	v, ok := w.Get("visible").(bool)
	return ok && !v
}

func (w *Widget) Show() {
	if w.Hidden() {
		w.Set("visible", true)
	}
	if !w.drawn {
		w.EnableDraw()
	}
}

func (w *Widget) Hide() {
	if w.Hidden() {
		return
	}
	w.Set("visible", false)
}

// ForceShow shows the widget without waiting for a redraw.
func (w *Widget) ForceShow() {
	w.Set("visible", true)
	dom.AddClass(w.element, "aux-show")
	dom.RemoveClass(w.element, "aux-hide")
}

// ForceHide hides the widget without waiting for a redraw.
func (w *Widget) ForceHide() {
	w.Set("visible", false)
	dom.RemoveClass(w.element, "aux-show")
	dom.AddClass(w.element, "aux-hide")
	w.DisableDraw()
}

// ShowNoDraw marks the widget visible without enabling drawing.
func (w *Widget) ShowNoDraw() {
	if v, _ := w.Get("visible").(bool); v || w.IsDestructed() {
		return
	}
	if w.drawn {
		w.Update("visible", true)
	} else {
		w.options["visible"] = true
	}
}

func (w *Widget) HideNoDraw() {
	if v, ok := w.Get("visible").(bool); ok && !v {
		return
	}
	w.Update("visible", false)
}

func (w *Widget) ToggleHidden() {
	if w.Hidden() {
		w.Show()
	} else {
		w.Hide()
	}
}

// --- Destruction -----------------------------------------------------------

// Destroy releases subscriptions, detaches the widget from its parent and
// the DOM, and drops its children. Destroying twice only warns.
func (w *Widget) Destroy() {
	if w.IsDestructed() {
		w.logger().Warning().
			Str("widget", w.class.name).
			Log("destroy called twice")
		return
	}

	subscriptions := w.subscriptions
	w.subscriptions = nil
	for _, unsubscribe := range subscriptions {
		unsubscribe()
	}

	w.Emit("destroy")
	w.DisableDraw()
	w.SetParent(nil)
	if w.mounted {
		w.runtime.Unmount(w)
	}

	for _, c := range w.Children() {
		w.RemoveChild(c)
	}
	w.children = nil

	w.listeners = nil
	w.drawQueue = nil
	w.renders = renderState{}
	w.options = nil

	dom.Remove(w.element)
}
