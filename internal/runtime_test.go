package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntime(t *testing.T) {
	t.Run("mount and unmount", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		a := NewWidget(nil, nil, WithRuntime(r))
		b := NewWidget(nil, nil, WithRuntime(r))

		r.Mount(a)
		r.Mount(b)
		r.Mount(a)
		assert.Equal(t, []*Widget{a, b}, r.Roots())
		assert.True(t, a.IsDrawn())

		r.Unmount(a)
		assert.Equal(t, []*Widget{b}, r.Roots())
	})

	t.Run("a root given a parent is unmounted", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		root := NewWidget(nil, nil, WithRuntime(r))
		w := NewWidget(nil, nil, WithRuntime(r))
		r.Mount(root)
		r.Mount(w)

		assert.NoError(t, root.AddChild(w))
		assert.Equal(t, []*Widget{root}, r.Roots())

		r.Mount(w)
		assert.Nil(t, w.Parent())
		assert.Empty(t, root.Children())
	})

	t.Run("destroy unmounts", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		w := NewWidget(nil, nil, WithRuntime(r))
		r.Mount(w)
		w.Destroy()

		assert.Empty(t, r.Roots())
		r.Mount(w)
		assert.Empty(t, r.Roots())
	})

	t.Run("hidden document", func(t *testing.T) {
		r, _ := newTestRuntime(t)

		a := NewWidget(nil, nil, WithRuntime(r))
		r.Mount(a)

		r.SetHidden(true)
		assert.True(t, r.Hidden())
		assert.False(t, a.IsDrawn())

		b := NewWidget(nil, nil, WithRuntime(r))
		r.Mount(b)
		assert.False(t, b.IsDrawn())

		r.SetHidden(false)
		assert.True(t, a.IsDrawn())
		assert.True(t, b.IsDrawn())
	})

	t.Run("notify resize", func(t *testing.T) {
		count := 0
		r, _ := newTestRuntime(t)

		w := NewWidget(nil, nil, WithRuntime(r))
		w.On("resize", func(w *Widget, args ...any) any {
			count++
			return nil
		})
		r.Mount(w)
		r.Flush()
		count = 0

		r.NotifyResize()
		r.Flush()
		assert.Equal(t, 1, count)
	})

	t.Run("flush without manual frames", func(t *testing.T) {
		requested := 0
		r, _ := newTestRuntime(t, WithFrameRequester(frameFunc(func(fn func()) { requested++ })))
		r.Add(NewTask("noop", func() {}), 0)

		assert.Equal(t, 0, r.Flush())
		assert.Equal(t, 1, requested)
		assert.NotNil(t, r.Logger())
	})
}

func TestGetRuntime(t *testing.T) {
	t.Run("one runtime per goroutine", func(t *testing.T) {
		r := GetRuntime()
		assert.Same(t, r, GetRuntime())

		var other *Runtime
		var wg sync.WaitGroup
		wg.Go(func() {
			other = GetRuntime()
			ReleaseRuntime()
		})
		wg.Wait()

		assert.NotSame(t, r, other)
	})

	t.Run("release", func(t *testing.T) {
		r := GetRuntime()
		ReleaseRuntime()
		assert.NotSame(t, r, GetRuntime())
		ReleaseRuntime()
	})

	t.Run("widgets default to the goroutine runtime", func(t *testing.T) {
		defer ReleaseRuntime()

		w := NewWidget(nil, nil)
		assert.Same(t, GetRuntime(), w.Runtime())
	})
}
