package internal

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/require"
)

// newTestRuntime returns a runtime with manually stepped frames, logging
// everything into the returned buffer.
func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	opts = append([]Option{WithLogger(NewLogger(&buf, logiface.LevelDebug))}, opts...)

	r, err := NewRuntime(opts...)
	require.NoError(t, err)
	return r, &buf
}

func newTestScheduler(t *testing.T, opts ...Option) (*Scheduler, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	opts = append([]Option{WithLogger(NewLogger(&buf, logiface.LevelDebug))}, opts...)

	s, err := NewScheduler(opts...)
	require.NoError(t, err)
	return s, &buf
}

func logTask(log *[]string, name string) *Task {
	return NewTask(name, func() { *log = append(*log, name) })
}

// frameFunc adapts a function to FrameRequester.
type frameFunc func(fn func())

func (f frameFunc) RequestFrame(fn func()) { f(fn) }
