//go:build !(js && wasm)

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime of the calling goroutine, creating it on
// first use. Its frames are delivered manually, see Runtime.Flush.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r, err := NewRuntime()
	if err != nil {
		panic(err)
	}
	runtimes.Store(gid, r)
	return r
}

// ReleaseRuntime forgets the runtime of the calling goroutine.
func ReleaseRuntime() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
