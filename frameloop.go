//go:build !(js && wasm)

package wig

import (
	"time"

	"github.com/AnatoleLucet/wig/internal"
)

// FrameLoop delivers frames from an event loop on the goroutine running it.
type FrameLoop = internal.FrameLoop

// NewFrameLoop returns a FrameLoop delivering frames at most once per
// interval, 60 times a second if interval is not positive.
func NewFrameLoop(interval time.Duration) (*FrameLoop, error) {
	return internal.NewFrameLoop(interval)
}
