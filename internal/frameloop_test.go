//go:build !(js && wasm)

package internal

import (
	"context"
	"testing"
	"time"

	"github.com/joeycumines/go-eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFrameLoop(t *testing.T) *FrameLoop {
	t.Helper()

	loop, err := NewFrameLoop(time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = loop.Run(ctx)
	}()

	t.Cleanup(func() {
		_ = loop.Shutdown(ctx)
		cancel()
		<-stopped
	})
	return loop
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestFrameLoop(t *testing.T) {
	t.Run("delivers frames after posted work", func(t *testing.T) {
		log := []string{}
		done := make(chan struct{})
		loop := runFrameLoop(t)

		require.NoError(t, loop.Post(func() {
			log = append(log, "posted")
			loop.RequestFrame(func() {
				log = append(log, "frame")
				close(done)
			})
		}))

		wait(t, done)
		assert.Equal(t, []string{"posted", "frame"}, log)
	})

	t.Run("requests before the next frame share it", func(t *testing.T) {
		log := []string{}
		done := make(chan struct{})
		loop := runFrameLoop(t)

		require.NoError(t, loop.Post(func() {
			loop.RequestFrame(func() { log = append(log, "a") })
			loop.RequestFrame(func() {
				log = append(log, "b")
				close(done)
			})
		}))

		wait(t, done)
		assert.Equal(t, []string{"a", "b"}, log)
	})

	t.Run("drives a runtime", func(t *testing.T) {
		loop := runFrameLoop(t)
		r, _ := newTestRuntime(t, WithFrameRequester(loop))
		done := make(chan struct{})

		var w *Widget
		require.NoError(t, loop.Post(func() {
			w = NewWidget(nil, map[string]any{"id": "looped"}, WithRuntime(r))
			r.Mount(w)
			r.AfterFrame(func() { close(done) })
		}))

		wait(t, done)
		assert.True(t, w.HasClass("aux-widget"))
		assert.True(t, w.IsDrawn())
		assert.Equal(t, 0, r.Flush())
	})

	t.Run("post fails once shut down", func(t *testing.T) {
		loop, err := NewFrameLoop(0)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			_ = loop.Run(ctx)
		}()

		require.NoError(t, loop.Post(func() {}))
		_ = loop.Shutdown(ctx)
		<-stopped

		assert.ErrorIs(t, loop.Post(func() {}), eventloop.ErrLoopTerminated)
	})
}
