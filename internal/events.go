package internal

import "slices"

type listener struct {
	fn Handler
}

// On adds an instance listener for event and returns a function removing it.
func (w *Widget) On(event string, fn Handler) func() {
	if w.listeners == nil || fn == nil {
		return func() {}
	}

	l := &listener{fn: fn}
	w.listeners[event] = append(w.listeners[event], l)

	active := true
	return func() {
		if !active {
			return
		}
		active = false
		w.off(event, l)
	}
}

// Once adds a listener removed before its first call.
func (w *Widget) Once(event string, fn Handler) func() {
	var unsubscribe func()
	unsubscribe = w.On(event, func(w *Widget, args ...any) any {
		unsubscribe()
		return fn(w, args...)
	})
	return unsubscribe
}

func (w *Widget) off(event string, l *listener) {
	if w.listeners == nil {
		return
	}

	listeners := slices.DeleteFunc(slices.Clone(w.listeners[event]), func(other *listener) bool {
		return other == l
	})
	if len(listeners) == 0 {
		delete(w.listeners, event)
		return
	}
	w.listeners[event] = listeners
}

// HasEventListeners reports whether emitting event would reach any handler.
func (w *Widget) HasEventListeners(event string) bool {
	if len(w.listeners[event]) > 0 {
		return true
	}
	return w.class.HasStaticEvent(event)
}

// Emit calls the instance listeners of event, then the static handlers of the
// class. The first non-nil result stops dispatch and is returned.
func (w *Widget) Emit(event string, args ...any) any {
	if listeners := w.listeners[event]; len(listeners) > 0 {
		for _, l := range listeners {
			if v := w.callHandler(event, l.fn, args); v != nil {
				return v
			}
		}
	}

	for _, fn := range w.class.StaticEvents(event) {
		if v := w.callHandler(event, fn, args); v != nil {
			return v
		}
	}
	return nil
}

func (w *Widget) callHandler(event string, fn Handler, args []any) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			w.logger().Warning().
				Str("widget", w.class.name).
				Str("event", event).
				Any("panic", r).
				Log("event handler panicked")
			ret = nil
		}
	}()

	return fn(w, args...)
}
