//go:build js && wasm

package internal

import "syscall/js"

// AnimationFrames delivers frames through the browser's requestAnimationFrame.
type AnimationFrames struct {
	pending  []func()
	callback js.Func
}

func NewAnimationFrames() *AnimationFrames {
	a := &AnimationFrames{}
	a.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		frames := a.pending
		a.pending = nil

		for _, fn := range frames {
			fn()
		}
		return nil
	})

	return a
}

func (a *AnimationFrames) RequestFrame(fn func()) {
	a.pending = append(a.pending, fn)
	if len(a.pending) > 1 {
		return
	}

	js.Global().Call("requestAnimationFrame", a.callback)
}
