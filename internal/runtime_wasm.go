//go:build js && wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

// GetRuntime returns the page-wide runtime, driven by requestAnimationFrame.
func GetRuntime() *Runtime {
	once.Do(func() {
		r, err := NewRuntime(WithFrameRequester(NewAnimationFrames()))
		if err != nil {
			panic(err)
		}
		globalRuntime = r
	})

	return globalRuntime
}

// ReleaseRuntime does nothing, the page-wide runtime lives as long as the page.
func ReleaseRuntime() {}
